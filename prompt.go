package main

import (
	"fmt"
	"strings"
)

const (
	writerInstruction   = "You are a professional resume writer and career coach. Create high-quality, ATS-friendly resumes that help candidates land interviews. Use clear formatting, strong action verbs, and quantifiable achievements."
	coachInstruction    = "You are a helpful AI assistant for career coaching and resume writing."
	rewriterInstruction = "You are a professional resume writer."
)

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func createResumePrompt(f ResumeForm) string {
	var b strings.Builder

	b.WriteString("Create a professional, ATS-friendly resume for the following candidate. Use a clean, modern format with clear sections and bullet points.\n\n")

	b.WriteString("**Personal Information:**\n")
	fmt.Fprintf(&b, "- Name: %s\n", f.FullName)
	fmt.Fprintf(&b, "- Email: %s\n", f.Email)
	if f.Phone != "" {
		fmt.Fprintf(&b, "- Phone: %s\n", f.Phone)
	}
	if f.Location != "" {
		fmt.Fprintf(&b, "- Location: %s\n", f.Location)
	}

	fmt.Fprintf(&b, "\n**Professional Summary:**\n%s\n", orDefault(f.ProfessionalSummary,
		"Please create a compelling professional summary based on the job title and experience level."))
	fmt.Fprintf(&b, "\n**Target Position:** %s\n", f.JobTitle)
	fmt.Fprintf(&b, "**Experience Level:** %s\n", orDefault(f.YearsOfExperience, "Not specified"))
	fmt.Fprintf(&b, "\n**Skills:** %s\n", orDefault(f.Skills, "Please suggest relevant skills for this position."))
	fmt.Fprintf(&b, "\n**Work Experience:**\n%s\n", orDefault(f.WorkExperience,
		"Please create relevant work experience based on the job title and experience level."))
	fmt.Fprintf(&b, "\n**Education:**\n%s\n", orDefault(f.Education, "Please include a standard education section."))
	if f.Certifications != "" {
		fmt.Fprintf(&b, "\n**Certifications:** %s\n", f.Certifications)
	}
	if f.AdditionalInfo != "" {
		fmt.Fprintf(&b, "\n**Additional Information:** %s\n", f.AdditionalInfo)
	}

	b.WriteString(`
**Instructions:**
1. Format the resume in Markdown with clear headings (## for main sections)
2. Use bullet points for achievements and responsibilities
3. Make it ATS-friendly with standard section names
4. Include quantifiable achievements where possible
5. Use action verbs and professional language
6. Keep it concise but comprehensive
7. Ensure proper spacing and formatting
8. If any information is missing, create realistic placeholder content that would be appropriate for the position

**Resume Structure:**
- Professional Summary
- Skills
- Work Experience (with dates and achievements)
- Education
- Certifications (if provided)
- Additional Information (if provided)

Generate a complete, professional resume that the candidate can use immediately.
`)
	return b.String()
}

func critiquePrompt(resumeText string) string {
	return fmt.Sprintf(`
I'm a career coach and I want to provide personalized feedback on a client's resume.
I need you to act as my AI assistant.
Here is the resume text:
%s

Please do the following for me:

Summarize the candidate's professional profile in a concise paragraph.

Identify 5 key areas for improvement. For each area, provide a specific, actionable tip that the candidate can implement to make their resume stronger.
Focus on tips that will increase their chances of getting an interview.

The output should be clear, professional, and easy for me to share with my client. Please use a friendly but direct tone.

The output should be formatted with clear headings for the summary and each tip.
The tips should be presented as a numbered list.
`, resumeText)
}

func rewritePrompt(resumeText string) string {
	return fmt.Sprintf(`
Act as a professional resume writer. I need you to create a new, improved resume for a candidate using the following information.

Based on the provided resume text, please do the following:

- **Professional Summary:** Draft a new, compelling 2-3 sentence summary that highlights the candidate's key qualifications and career focus.
- **Experience:** Rewrite the job descriptions. Instead of just listing duties, use strong action verbs and quantifiable results to describe accomplishments for each role.
- **Skills:** Create a dedicated skills section that is well-organized and easy to scan.
- **Format:** Use a clean, modern, and professional format in Markdown that is easy for recruiters to read.

Here is the resume text:
%s
`, resumeText)
}
