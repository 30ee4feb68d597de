package llm

const lessonSpecPrompt = `Given these lesson details:
Title: %s
Description: %s

Create a single short description (1-2 sentences) that captures the exact concepts to teach, ideal depth, and example requirement.
Format: "Teach: X, Y; Level: beginner; Example: show code snippet for Z"
Output ONLY the sentence.`

const coveragePrompt = `You are an instructor evaluating if a video transcript segment covers the required lesson plan.

Lesson Requirement: %q

Transcript Segment:
%q

Does this segment cover the lesson core concepts?
Return JSON:
{
    "score": <float 0.0 to 1.0>,
    "reason": "<short justification>",
    "covered_concepts": ["<concept1>", "<concept2>"],
    "missing_concepts": ["<missing1>"]
}`

const supplementPrompt = `Write a concise 400-700 word lesson text that explains %q for %q learners.
Include 2 short examples and 1 quick quiz question.
The content should be accurate, engaging, and suitable for a self-paced learner.
Return only the text content (Markdown supported).`
