package curriculum

import "fmt"

const designSystemPrompt = `Act as an expert educational designer specializing in PBL, STEAM, and Finnish Phenomenon-based Learning.
Design a future-oriented curriculum based on the following request.
Focus on cross-disciplinary integration, reducing academic burden through play, and non-score based assessment.`

func buildDesignUserMessage(themePrompt string) string {
	return "Request: " + themePrompt
}

func buildIllustrationPrompt(title string) string {
	return fmt.Sprintf("A high-quality, concept art illustration of this educational theme: %s. "+
		"Style: Bright, futuristic, inspirational, child-friendly 3D render.", title)
}
