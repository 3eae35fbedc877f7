package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fadilmartias/hireflow/internal/dto"
	"github.com/tidwall/gjson"
)

// PromptBudget bounds how much extracted document text is injected into a
// prompt. Limits are character counts applied before the call, not inside
// it, so every call site shares one tested truncation policy.
type PromptBudget struct {
	PolicyChars     int
	ResumeChars     int
	TranscriptChars int
}

func DefaultPromptBudget() PromptBudget {
	return PromptBudget{
		PolicyChars:     10000,
		ResumeChars:     4000,
		TranscriptChars: 8000,
	}
}

// Truncate caps s at max bytes without splitting a UTF-8 rune.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

type AIServiceInterface interface {
	ScoreResume(ctx context.Context, resumeText, jobTitle, jobDescription string) (*dto.ATSReport, error)
	GenerateQuestions(ctx context.Context, resumeText, jobTitle string) ([]string, error)
	AnswerFromPolicy(ctx context.Context, policyText, question string) (string, error)
	SummarizeTranscript(ctx context.Context, transcript string) (*dto.InterviewSummary, error)
}

// AIService is the single seam between the interview flow and the inference
// providers: Groq for scoring, question generation and summaries, Gemini
// for policy-grounded answering.
type AIService struct {
	groq   GroqServiceInterface
	gemini GeminiServiceInterface
	budget PromptBudget
}

func NewAIService(groq GroqServiceInterface, gemini GeminiServiceInterface, budget PromptBudget) *AIService {
	return &AIService{groq: groq, gemini: gemini, budget: budget}
}

const jsonOnlySystem = "You are a helpful assistant that outputs raw JSON data without markdown formatting."

func (s *AIService) ScoreResume(ctx context.Context, resumeText, jobTitle, jobDescription string) (*dto.ATSReport, error) {
	if jobDescription == "" {
		jobDescription = "Industry standards for this role"
	}
	prompt := fmt.Sprintf(`You are a strict ATS (Applicant Tracking System) analyzer.

First verify the document is actually a resume/CV: it should contain resume
sections (experience, education, skills, projects) and none of the markers of
tickets, invoices or receipts. If it is not a resume, return score = 0 with
feedback explaining why.

Target Role: %q
Job Description: %s

Document Content:
%s

Scoring: 90-100 perfect match, 75-89 strong, 60-74 good, 40-59 moderate,
20-39 weak, 0-19 poor or irrelevant, 0 not a resume.

Output ONLY valid JSON (no markdown):
{
    "score": <int 0-100>,
    "matched_keywords": ["keyword1"],
    "missing_critical_keywords": ["must-have skill"],
    "missing_bonus_keywords": ["nice-to-have skill"],
    "formatting_issues": ["issue"],
    "feedback": "<detailed constructive feedback>",
    "strengths": ["strength"]
}`, jobTitle, jobDescription, Truncate(resumeText, s.budget.ResumeChars))

	raw, err := s.groq.Chat(ctx, jsonOnlySystem, prompt, 0.3)
	if err != nil {
		return nil, fmt.Errorf("score resume: %w", err)
	}
	return parseATSReport(raw)
}

func (s *AIService) GenerateQuestions(ctx context.Context, resumeText, jobTitle string) ([]string, error) {
	prompt := fmt.Sprintf(`Based on the resume below, generate exactly 3 technical interview
questions tailored to a candidate applying for the role of %q. Questions must
probe skills and projects the resume actually mentions. Output ONLY a valid
JSON array of exactly 3 question strings, no markdown, no numbering.

Resume:
%s`, jobTitle, Truncate(resumeText, s.budget.ResumeChars))

	raw, err := s.groq.Chat(ctx, jsonOnlySystem, prompt, 0.5)
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}
	return parseQuestions(raw)
}

func (s *AIService) AnswerFromPolicy(ctx context.Context, policyText, question string) (string, error) {
	prompt := fmt.Sprintf(`You are an HR assistant answering a candidate's question about company
policies. Answer ONLY from the policy text below. If the answer is not in the
text, say you don't have that information and suggest asking HR directly. Do
not invent policies. Keep the answer under 4 sentences.

Policy text:
%s

Candidate question: %s`, Truncate(policyText, s.budget.PolicyChars), question)

	answer, err := s.gemini.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("answer from policy: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

func (s *AIService) SummarizeTranscript(ctx context.Context, transcript string) (*dto.InterviewSummary, error) {
	prompt := fmt.Sprintf(`Summarize the screening interview transcript below for an HR reviewer.
Judge communication, technical depth and overall fit. Output ONLY valid JSON:
{
    "strengths": ["strength"],
    "weaknesses": ["weakness"],
    "recommendation": "<one of: Strong Hire, Hire, Maybe, No Hire, with one sentence of reasoning>"
}

Transcript:
%s`, Truncate(transcript, s.budget.TranscriptChars))

	raw, err := s.groq.Chat(ctx, jsonOnlySystem, prompt, 0.3)
	if err != nil {
		return nil, fmt.Errorf("summarize transcript: %w", err)
	}
	return parseSummary(raw)
}

// extractJSON strips markdown fences and anything outside the outermost
// delimiters. Models wrap JSON in prose often enough that this is cheaper
// than re-prompting.
func extractJSON(raw string, opener, closer byte) (string, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	start := strings.IndexByte(cleaned, opener)
	end := strings.LastIndexByte(cleaned, closer)
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON found in model output: %q", Truncate(raw, 200))
	}
	return cleaned[start : end+1], nil
}

func parseATSReport(raw string) (*dto.ATSReport, error) {
	text, err := extractJSON(raw, '{', '}')
	if err != nil {
		return nil, err
	}
	if !gjson.Valid(text) {
		return nil, fmt.Errorf("invalid JSON in scoring output")
	}
	report := &dto.ATSReport{
		Score:                   int(gjson.Get(text, "score").Int()),
		MatchedKeywords:         stringSlice(gjson.Get(text, "matched_keywords")),
		MissingCriticalKeywords: stringSlice(gjson.Get(text, "missing_critical_keywords")),
		MissingBonusKeywords:    stringSlice(gjson.Get(text, "missing_bonus_keywords")),
		FormattingIssues:        stringSlice(gjson.Get(text, "formatting_issues")),
		Feedback:                gjson.Get(text, "feedback").String(),
		Strengths:               stringSlice(gjson.Get(text, "strengths")),
	}
	if report.Score < 0 {
		report.Score = 0
	}
	if report.Score > 100 {
		report.Score = 100
	}
	return report, nil
}

func parseQuestions(raw string) ([]string, error) {
	text, err := extractJSON(raw, '[', ']')
	if err != nil {
		return nil, err
	}
	if !gjson.Valid(text) {
		return nil, fmt.Errorf("invalid JSON in question output")
	}
	var questions []string
	for _, q := range gjson.Parse(text).Array() {
		if s := strings.TrimSpace(q.String()); s != "" {
			questions = append(questions, s)
		}
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("model returned no questions")
	}
	if len(questions) > 3 {
		questions = questions[:3]
	}
	return questions, nil
}

func parseSummary(raw string) (*dto.InterviewSummary, error) {
	text, err := extractJSON(raw, '{', '}')
	if err != nil {
		return nil, err
	}
	if !gjson.Valid(text) {
		return nil, fmt.Errorf("invalid JSON in summary output")
	}
	return &dto.InterviewSummary{
		Strengths:      stringSlice(gjson.Get(text, "strengths")),
		Weaknesses:     stringSlice(gjson.Get(text, "weaknesses")),
		Recommendation: gjson.Get(text, "recommendation").String(),
	}, nil
}

func stringSlice(result gjson.Result) []string {
	var out []string
	for _, item := range result.Array() {
		out = append(out, item.String())
	}
	return out
}
