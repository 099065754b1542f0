package domain

// Authentication is the closed set of credentials a repository can be configured with.
// Implementations are AccountAuthentication and PrivateKeyAuthentication.
type Authentication interface {
	// Accept dispatches to the visitor method matching the concrete variant.
	Accept(v AuthenticationVisitor)
	String() string
	isAuthentication()
}

// AuthenticationVisitor receives the concrete Authentication variant.
type AuthenticationVisitor interface {
	VisitAccount(a AccountAuthentication)
	VisitPrivateKey(a PrivateKeyAuthentication)
}

// AccountAuthentication authenticates with a user name and password.
type AccountAuthentication struct {
	Username string
	Password string
}

// Accept implements Authentication.
func (a AccountAuthentication) Accept(v AuthenticationVisitor) { v.VisitAccount(a) }

func (a AccountAuthentication) String() string { return "account:" + a.Username }

func (AccountAuthentication) isAuthentication() {}

// PrivateKeyAuthentication authenticates with a private key file and optional passphrase.
type PrivateKeyAuthentication struct {
	KeyPath    string
	Passphrase string
}

// Accept implements Authentication.
func (a PrivateKeyAuthentication) Accept(v AuthenticationVisitor) { v.VisitPrivateKey(a) }

func (a PrivateKeyAuthentication) String() string { return "key:" + a.KeyPath }

func (PrivateKeyAuthentication) isAuthentication() {}
