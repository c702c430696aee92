package model

// Extraction is the visual feature extractor's output for one photo.
// Embedding, Crop, and Thumbnail are all derived from the same cropped
// region so that classification and matching observe the identical
// visual content.
type Extraction struct {
	// Subject is true when the classification score clears the decision
	// margin for "is a decorated stone"
	Subject bool

	// Confidence is the signed classification score: mean similarity to
	// the positive-class prompts minus mean similarity to the
	// negative-class prompts
	Confidence float64

	// Embedding is the unit-norm visual fingerprint; nil when Subject is
	// false
	Embedding []float32

	// Crop is the subject-isolated JPEG used for classification and
	// embedding
	Crop []byte

	// Thumbnail is a display-quality, size-capped rendering of the crop
	Thumbnail []byte
}
