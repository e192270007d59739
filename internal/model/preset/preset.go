package preset

// Preset is a ready-made prompt offered to the user before they type their
// own question.
type Preset struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Prompt string `json:"prompt"`
	Quick  bool   `json:"quick,omitempty"`
}

// Seed provides the default preset catalog. Quick presets back the one-tap
// action row; the rest populate the quick-pick selector.
func Seed() []Preset {
	return []Preset{
		{
			ID:     "summarize",
			Label:  "Summarize this image",
			Prompt: "Summarize this image in 2-3 sentences, include the main subjects and mood.",
		},
		{
			ID:     "list-objects",
			Label:  "List key objects in the scene",
			Prompt: "List all visible objects and approximate counts.",
		},
		{
			ID:     "colors-mood",
			Label:  "Describe colors, lighting, and mood",
			Prompt: "Describe the colors, lighting conditions and overall mood.",
		},
		{
			ID:     "context",
			Label:  "Explain likely context & purpose",
			Prompt: "Explain what might be happening and the likely context of the scene.",
		},
		{
			ID:     "safety",
			Label:  "Identify potential safety concerns",
			Prompt: "List any potential safety hazards or issues visible in the scene.",
		},
		{
			ID:     "caption",
			Label:  "Suggest social media caption (short)",
			Prompt: "Write a short, catchy social media caption with 1-2 emojis.",
		},
		{
			ID:     "quick-summarize",
			Label:  "Summarize",
			Prompt: "Summarize this image in 2-3 sentences, include the main subjects and mood.",
			Quick:  true,
		},
		{
			ID:     "quick-detect",
			Label:  "Detect objects",
			Prompt: "List all visible objects and their probable labels.",
			Quick:  true,
		},
		{
			ID:     "quick-funny",
			Label:  "Make it funny",
			Prompt: "Describe this image in a humorous, light-hearted way with emojis.",
			Quick:  true,
		},
		{
			ID:     "quick-caption",
			Label:  "Caption",
			Prompt: "Suggest 3 short social-media captions (with emojis).",
			Quick:  true,
		},
	}
}
