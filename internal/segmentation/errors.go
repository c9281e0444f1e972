package segmentation

// ParseError reports input that is not valid JSON or is missing a required
// field. No output is produced for the call.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return "parse book: " + e.Reason + ": " + e.Err.Error()
	}
	return "parse book: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// SegmentationError reports a failure of the segmentation engine. It is
// propagated unchanged, never retried.
type SegmentationError struct {
	Err error
}

func (e *SegmentationError) Error() string {
	return "segmentation engine: " + e.Err.Error()
}

func (e *SegmentationError) Unwrap() error { return e.Err }

// SerializationError reports that a segmentation result could not be encoded.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return "serialize segmentation: " + e.Err.Error()
}

func (e *SerializationError) Unwrap() error { return e.Err }
