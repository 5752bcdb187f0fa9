package country

// Russia publishes Russian news for newcomers to Russia.
type Russia struct {
	settings Settings
}

var _ Profile = Russia{}

func (r Russia) Settings() Settings { return r.settings }

func (r Russia) SummarizationPrompt(content string) string {
	return summarizationPrompt("Russian", content, r.settings.TitlePolicy == TitleAI)
}

func (r Russia) TranslationPrompt(lang string) string {
	return translationPrompt("Russian", lang,
		"- Keep proper nouns (names, locations, organizations) in Russian within parentheses in the summary.", "")
}

func (r Russia) TopPrompt(k int) string {
	return topPrompt(k, "a Russian news app targeted at newcomers to Russia", []string{
		"Prioritize articles directly related to Russia or Eastern Europe",
	}, false)
}
