package ports

import "context"

// TransferReporter renders progress of repository transfers.
//
//go:generate mockgen -source=transfer.go -destination=mocks/mock_transfer.go -package=mocks
type TransferReporter interface {
	// Start announces a transfer and returns a handle to finish it.
	Start(ctx context.Context, name string) Transfer
}

// Transfer is a single in-flight transfer.
type Transfer interface {
	// Done completes the transfer. A nil error marks success.
	Done(err error)
	// Cached marks the transfer as satisfied locally.
	Cached()
}
