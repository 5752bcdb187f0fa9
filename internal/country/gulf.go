package country

const arabicGlossRule = "- Translate proper nouns unless they are globally recognized in their Arabic form."

// Saudi publishes Arabic news for newcomers to Saudi Arabia.
type Saudi struct {
	settings Settings
}

// UAE publishes Arabic news for newcomers to the United Arab Emirates.
type UAE struct {
	settings Settings
}

var (
	_ Profile = Saudi{}
	_ Profile = UAE{}
)

func (s Saudi) Settings() Settings { return s.settings }

func (s Saudi) SummarizationPrompt(content string) string {
	return summarizationPrompt("Arabic", content, s.settings.TitlePolicy == TitleAI)
}

func (s Saudi) TranslationPrompt(lang string) string {
	return translationPrompt("Arabic", lang, arabicGlossRule, "")
}

func (s Saudi) TopPrompt(k int) string {
	return topPrompt(k, "a Saudi news app targeted at newcomers to Saudi Arabia", []string{
		"Prioritize articles directly related to Saudi Arabia or the Middle East",
	}, false)
}

func (u UAE) Settings() Settings { return u.settings }

func (u UAE) SummarizationPrompt(content string) string {
	return summarizationPrompt("Arabic", content, u.settings.TitlePolicy == TitleAI)
}

func (u UAE) TranslationPrompt(lang string) string {
	return translationPrompt("Arabic", lang, arabicGlossRule, "")
}

func (u UAE) TopPrompt(k int) string {
	return topPrompt(k, "a UAE news app targeted at newcomers to the UAE", []string{
		"Prioritize articles directly related to the UAE or the Middle East",
	}, false)
}
