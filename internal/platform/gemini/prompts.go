package gemini

import "text/template"

// slidePromptTemplate asks for a strict-JSON five-slide micro-lesson
// tailored to one learning style. The model is told not to fence the
// output, but cleanResponse still strips fences when it does anyway.
const slidePromptTemplate = `You are an expert educational content creator for the Nevo app.
Create a 5-slide micro-lesson for a Student with a '{{.Profile}}' learning style.

Topic: {{.Title}}
Subject: {{.Subject}}
Source Material: {{.Content}}

The output must be strictly valid JSON. Do not use Markdown code blocks.
Structure:
[
  {
    "type": "visual", (or 'intro', 'content', 'interactive', 'quiz')
    "title": "Slide Title",
    "content": "Explanation text",
    "visual": "Description of an image or emoji representation",
    "question": { "text": "...", "options": [], "correct": 0 } (only for quiz/interactive)
  }
]
`

// guidancePromptTemplate asks for parent support advice keyed to the
// child's learning profile and recent activity.
const guidancePromptTemplate = `Generate parent guidance for a child named {{.ChildName}} who is a '{{.Profile}}' learner.
Recent activity: {{.RecentActivity}}

Return strict JSON:
{
  "recommendations": ["tip 1", "tip 2"],
  "encouragementTips": ["phrase 1", "phrase 2"]
}
`

var (
	slidePrompt    = template.Must(template.New("slides").Parse(slidePromptTemplate))
	guidancePrompt = template.Must(template.New("guidance").Parse(guidancePromptTemplate))
)
