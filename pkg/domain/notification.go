package domain

import "github.com/gagliardetto/solana-go"

// LogNotification is one log message of a transaction that mentions the pool program
type LogNotification struct {
	Signature solana.Signature
	Slot      uint64
	Logs      []string
	// Failed is set when the transaction returned an error
	Failed bool
}

// AccountNotification is one change of an account owned by the pool program
type AccountNotification struct {
	Account solana.PublicKey
	Slot    uint64
	Data    []byte
}
