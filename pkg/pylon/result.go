package pylon

// Package pylon implements the client for Pylon utility APIs. Every call is a
// single request/response transaction normalized into one of four result
// shapes depending on the upstream status code and content type.

// Kind identifies the shape of a normalized result.
type Kind string

const (
	KindPaymentRequired Kind = "payment_required"
	KindJSON            Kind = "json"
	KindBinary          Kind = "binary"
	KindText            Kind = "text"
)

// Result is the normalized outcome of a Pylon API call.
type Result interface {
	Kind() Kind
}

// PaymentRequired is returned when the upstream answered 402. It is a normal
// result, not a failure: the caller is expected to complete the x402 payment
// flow out of band. The payment details are surfaced verbatim.
type PaymentRequired struct {
	Message        string `json:"message"`
	PaymentDetails any    `json:"payment_details"`
}

func (*PaymentRequired) Kind() Kind { return KindPaymentRequired }

// JSONPayload carries the parsed body of an application/json response.
type JSONPayload struct {
	Value any `json:"value"`
}

func (*JSONPayload) Kind() Kind { return KindJSON }

// BinaryPayload carries an image or PDF body, base64 encoded.
type BinaryPayload struct {
	ContentType string `json:"content_type"`
	Base64Data  string `json:"data_base64"`
	SizeBytes   int    `json:"size_bytes"`
}

func (*BinaryPayload) Kind() Kind { return KindBinary }

// TextPayload is the fallback for any other content type.
type TextPayload struct {
	Text string `json:"text"`
}

func (*TextPayload) Kind() Kind { return KindText }
