package responder

// Request is one reply generation request. An empty Tone means the caller
// did not choose one and the generator's default tone applies.
type Request struct {
	Message string
	Tone    Tone
}
