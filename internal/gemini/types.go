package gemini

// Request/response shapes for the generateContent endpoint, reduced to
// the fields the screenshot pipeline uses.

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"` // base64
}

type generationConfig struct {
	ResponseModalities []string     `json:"responseModalities,omitempty"`
	ImageConfig        *imageConfig `json:"imageConfig,omitempty"`
}

type imageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// ImageRequest asks the backend to re-render one screenshot with its
// in-image text translated.
type ImageRequest struct {
	Data           []byte
	MimeType       string
	SourceLanguage string // English display name, e.g. "Korean"
	TargetLanguage string
	// AspectRatio is one of the backend's coarse ratio enum values
	// (e.g. "9:16"), chosen from the device class.
	AspectRatio string
	// PreserveWords are literal strings the backend must not translate
	// (brand and product names).
	PreserveWords []string
}
