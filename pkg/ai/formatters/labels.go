package formatters

import "strings"

// Labels carries the language-specific strings the AI client needs when the
// model reply cannot be used as-is.
type Labels struct {
	Language string
	// SectionMarkers are substrings that identify the first line of
	// resume-like content in a free-text reply.
	SectionMarkers []string
	// DefaultSuggestions is returned, in order, whenever parsing fails.
	DefaultSuggestions []string
}

const (
	LanguageChinese = "zh"
	LanguageEnglish = "en"
)

var chineseLabels = Labels{
	Language:       LanguageChinese,
	SectionMarkers: []string{"姓名", "联系方式", "个人信息", "工作经验", "教育背景"},
	DefaultSuggestions: []string{
		"建议突出与职位相关的技能和经验",
		"建议量化工作成果和项目影响",
		"建议调整关键词以提高匹配度",
	},
}

var englishLabels = Labels{
	Language:       LanguageEnglish,
	SectionMarkers: []string{"Name", "Contact", "Personal Information", "Work Experience", "Education"},
	DefaultSuggestions: []string{
		"Highlight the skills and experience most relevant to the role",
		"Quantify achievements and project impact",
		"Adjust keywords to improve the match with the job description",
	},
}

// GetLabels returns the labels for a language code, falling back to Chinese.
func GetLabels(language string) Labels {
	switch NormalizeLanguage(language) {
	case LanguageEnglish:
		return cloneLabels(englishLabels)
	default:
		return cloneLabels(chineseLabels)
	}
}

// NormalizeLanguage maps loose inputs ("EN", "en-US", "english", "zh-CN")
// to a supported language code.
func NormalizeLanguage(language string) string {
	l := strings.ToLower(strings.TrimSpace(language))
	switch {
	case l == "english" || strings.HasPrefix(l, "en"):
		return LanguageEnglish
	default:
		return LanguageChinese
	}
}

func cloneLabels(l Labels) Labels {
	return Labels{
		Language:           l.Language,
		SectionMarkers:     append([]string(nil), l.SectionMarkers...),
		DefaultSuggestions: append([]string(nil), l.DefaultSuggestions...),
	}
}
