package ai

import (
	"fmt"

	"resume-optimizer/pkg/ai/formatters"
)

const optimizationPromptZH = `
作为一名专业的简历优化专家，请根据以下职位描述优化简历内容。

职位描述：
%s

原始简历：
%s

请按照以下要求进行优化：

1. 分析职位要求与简历的匹配度
2. 优化简历内容，突出与职位相关的技能和经验
3. 调整关键词以提高ATS系统通过率
4. 保持简历的真实性，不添加虚假信息
5. 优化语言表达，使其更加专业和有说服力

请按照以下JSON格式返回结果：
{
  "optimizedResume": "优化后的完整简历内容",
  "matchScore": 85,
  "suggestions": [
    "建议1：突出相关技术技能",
    "建议2：量化工作成果",
    "建议3：调整关键词匹配"
  ]
}

注意：
- matchScore 应该是0-100之间的整数，表示优化后简历与职位的匹配度
- suggestions 应该包含3-5条具体的优化建议
- optimizedResume 应该是完整的、格式良好的简历内容
- 请确保返回的是有效的JSON格式
`

const optimizationPromptEN = `
You are a professional resume optimization expert. Optimize the resume below for the job description.

Job description:
%s

Original resume:
%s

Follow these rules:

1. Analyze how well the resume matches the job requirements
2. Rewrite the resume to emphasize the skills and experience relevant to the role
3. Adjust keywords to improve ATS pass rates
4. Keep the resume truthful; do not invent experience
5. Make the wording more professional and persuasive

Return the result in this JSON format:
{
  "optimizedResume": "the complete optimized resume",
  "matchScore": 85,
  "suggestions": [
    "Suggestion 1: highlight relevant technical skills",
    "Suggestion 2: quantify achievements",
    "Suggestion 3: align keywords"
  ]
}

Notes:
- matchScore must be an integer between 0 and 100 describing how well the optimized resume matches the role
- suggestions must contain 3-5 concrete suggestions
- optimizedResume must be the complete, well formatted resume
- Return valid JSON only
`

const scorePromptZH = `
请分析以下简历与职位描述的匹配度，并给出0-100的分数。

职位描述：
%s

简历：
%s

请只返回一个0-100之间的数字，表示匹配度分数。
`

const scorePromptEN = `
Rate how well the following resume matches the job description on a scale of 0-100.

Job description:
%s

Resume:
%s

Reply with a single number between 0 and 100 and nothing else.
`

func optimizationPrompt(language, resume, jobDescription string) string {
	tpl := optimizationPromptZH
	if formatters.NormalizeLanguage(language) == formatters.LanguageEnglish {
		tpl = optimizationPromptEN
	}
	return fmt.Sprintf(tpl, jobDescription, resume)
}

func scorePrompt(language, resume, jobDescription string) string {
	tpl := scorePromptZH
	if formatters.NormalizeLanguage(language) == formatters.LanguageEnglish {
		tpl = scorePromptEN
	}
	return fmt.Sprintf(tpl, jobDescription, resume)
}
