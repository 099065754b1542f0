package config

// File is the structure of m2.yaml / m2.toml.
type File struct {
	LocalRepository string `yaml:"localRepository" toml:"localRepository"`
	// Repositories distinguishes an absent key (nil, defaults apply) from an empty list.
	Repositories   *[]RepositoryDTO             `yaml:"repositories" toml:"repositories"`
	Authentication map[string]AuthenticationDTO `yaml:"authentication" toml:"authentication"`
}

// RepositoryDTO is a remote repository entry.
type RepositoryDTO struct {
	ID        string     `yaml:"id" toml:"id"`
	URL       string     `yaml:"url" toml:"url"`
	Layout    string     `yaml:"layout" toml:"layout"`
	Releases  *PolicyDTO `yaml:"releases" toml:"releases"`
	Snapshots *PolicyDTO `yaml:"snapshots" toml:"snapshots"`
}

// PolicyDTO is a release or snapshot policy.
type PolicyDTO struct {
	Enabled        *bool  `yaml:"enabled" toml:"enabled"`
	UpdatePolicy   string `yaml:"updatePolicy" toml:"updatePolicy"`
	ChecksumPolicy string `yaml:"checksumPolicy" toml:"checksumPolicy"`
}

// AuthenticationDTO is either an account (username/password) or a private key.
type AuthenticationDTO struct {
	Username   string `yaml:"username" toml:"username"`
	Password   string `yaml:"password" toml:"password"`
	PrivateKey string `yaml:"privateKey" toml:"privateKey"`
	Passphrase string `yaml:"passphrase" toml:"passphrase"`
}
