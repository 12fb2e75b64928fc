package model

const (
	DefaultWorkURL  = "https://www.youtube.com/watch?v=jfKfPfyJRdk"
	DefaultBreakURL = "https://www.youtube.com/watch?v=DWcJFNfaw9c"
)

type SourceConfig struct {
	Work  string `json:"work"`
	Break string `json:"break"`
}

func DefaultSourceConfig() SourceConfig {
	return SourceConfig{Work: DefaultWorkURL, Break: DefaultBreakURL}
}

// WithDefaults fills empty URLs with the built-in sources.
func (s SourceConfig) WithDefaults() SourceConfig {
	if s.Work == "" {
		s.Work = DefaultWorkURL
	}
	if s.Break == "" {
		s.Break = DefaultBreakURL
	}
	return s
}

func (s SourceConfig) URLFor(phase Phase) string {
	s = s.WithDefaults()
	if phase == PhaseBreak {
		return s.Break
	}
	return s.Work
}
