package domain

// Domain contains the call outcome and display models shared by the client and the screen.

// HelloBody is the payload returned by the hello endpoint.
type HelloBody struct {
	Text string `json:"text"`
}

// ShapeBody is the payload returned by the shape endpoint. Shape is a free-form label.
type ShapeBody struct {
	Shape string `json:"shape"`
}

// ImageKey is an abstract image handle; renderers map it to a concrete asset.
type ImageKey string

const (
	ImageHello     ImageKey = "hello"
	ImageConfused  ImageKey = "confused"
	ImageSquare    ImageKey = "square"
	ImageCircle    ImageKey = "circle"
	ImageRectangle ImageKey = "rectangle"
	ImageTriangle  ImageKey = "triangle"
)

// ImageKeys lists every image key in declaration order.
func ImageKeys() []ImageKey {
	return []ImageKey{ImageHello, ImageConfused, ImageSquare, ImageCircle, ImageRectangle, ImageTriangle}
}

// DisplayState is what the status area shows after a call completes.
type DisplayState struct {
	ImageKey   ImageKey `json:"image_key"`
	StatusText string   `json:"status_text"`
	Visible    bool     `json:"visible"`
}

// OutcomeKind tags the variant held by a CallOutcome.
type OutcomeKind int

const (
	// OutcomeUnknown is the zero value; resolvers treat it as a transport failure.
	OutcomeUnknown OutcomeKind = iota
	OutcomeSuccess
	OutcomeHTTPError
	OutcomeTransportFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeHTTPError:
		return "http_error"
	case OutcomeTransportFailure:
		return "transport_failure"
	default:
		return "unknown"
	}
}

// CallOutcome is the result of one call attempt. Only the fields relevant to Kind are set:
// StatusCode and Body for success, StatusCode for HTTP errors, Message for transport failures.
type CallOutcome[T any] struct {
	Kind       OutcomeKind
	StatusCode int
	Body       T
	Message    string
}

// Success builds an outcome for a response that carried a parseable body.
func Success[T any](statusCode int, body T) CallOutcome[T] {
	return CallOutcome[T]{Kind: OutcomeSuccess, StatusCode: statusCode, Body: body}
}

// HTTPError builds an outcome for a response with a non-2xx status.
func HTTPError[T any](statusCode int) CallOutcome[T] {
	return CallOutcome[T]{Kind: OutcomeHTTPError, StatusCode: statusCode}
}

// TransportFailure builds an outcome for a call that never produced a usable response.
func TransportFailure[T any](message string) CallOutcome[T] {
	return CallOutcome[T]{Kind: OutcomeTransportFailure, Message: message}
}
