package verify

// Kind classifies a verification failure so the transport layer can map it
// to a status code and the client can show a specific rejection message.
type Kind string

const (
	KindValidation         Kind = "ValidationError"
	KindHashMismatch       Kind = "HashMismatch"
	KindDuplicate          Kind = "DuplicateAttestation"
	KindTxNotFound         Kind = "TransactionNotFound"
	KindTxFailed           Kind = "TransactionFailed"
	KindWrongContract      Kind = "WrongContract"
	KindEventNotFound      Kind = "EventNotFound"
	KindEventHashMismatch  Kind = "EventHashMismatch"
	KindSubmitterMismatch  Kind = "SubmitterMismatch"
	KindStorageUnavailable Kind = "StorageUnavailable"
	KindLedgerUnreachable  Kind = "LedgerUnreachable"
	KindUnknown            Kind = "UnknownFailure"
)

// Error is a verification failure with a machine-readable kind and a
// human-readable message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

func fail(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}
