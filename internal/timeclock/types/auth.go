package types

// Status values returned to clock-in terminals. The reader hardware only
// distinguishes OK from KO; everything else rides in the message.
const (
	StatusOK = "OK"
	StatusKO = "KO"
)

// CredentialAuthRequest is sent by the NFC reader with the raw key it read.
type CredentialAuthRequest struct {
	Key string `json:"key"`
}

// OtpAuthRequest carries a previously issued one-time code.
type OtpAuthRequest struct {
	Code string `json:"code"`
}

// ManualAuthRequest carries a person identifier typed at the kiosk.
type ManualAuthRequest struct {
	UID string `json:"uid"`
}

// OtpIssueRequest asks for a new one-time code to be generated and sent.
// Type is "in" or "out"; Method is "email" or "sms".
type OtpIssueRequest struct {
	UID    string `json:"uid"`
	Type   string `json:"type"`
	Method string `json:"method"`
}

// AuthResponse is the only shape clock-in endpoints ever return. The
// terminal renders Msg verbatim, so it must never leak internals.
type AuthResponse struct {
	Status string `json:"status"`
	Msg    string `json:"msg"`
}

// OtpIssueResponse confirms code issuance. Code is populated only on
// development deployments.
type OtpIssueResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}
