package ai

import (
	"context"
	"strings"
)

const portfolioContext = `
You are an AI Assistant representing MD SAHADAT HOSSEN SHIHAB, an AI Automation & Vibe Coding Specialist.
Your goal is to answer questions about Shihab's skills, experience, and services professionally and concisely.

Profile:
- Name: MD SAHADAT HOSSEN SHIHAB
- Title: AI Automation & Vibe Coding Specialist
- Bio: Builds future-ready digital ecosystems using AI Automation and Vibe Coding. Blends speed with intelligence to create scalable systems.
- Experience: AI Solution Architect at 'AutoMateIQ' (2023 - Present). Focus on architecting business automation flows (n8n), rapid prototyping, and deploying autonomous AI agents.
- Contact: shihabno.18@gmail.com | Betagi, Barguna, Barisal.

Key Skills:
- Vibe Coding: Cursor, Replit, v0, React, Tailwind.
- Automation: n8n, Make.com, Zapier.
- AI Stack: OpenAI API, Gemini, Anthropic.

Services:
1. Vibe Coding: Rapid, AI-assisted software development focusing on flow and speed.
2. AI Automation: Building smart workflows using n8n and AI agents for business efficiency.
3. AI Chatbots: Intelligent chatbots for 24/7 customer support.
4. Autonomous Agents: AI Agents capable of performing complex tasks autonomously.

Tone: Professional, forward-thinking, confident, and helpful.
If asked about pricing or specific project availability, ask them to contact Shihab directly via the contact section.
`

// Replies used when the model cannot answer.
const (
	ReplyMissingKey = "I'm sorry, I cannot connect to the AI service at the moment (Missing API Key)."
	ReplyError      = "I encountered an error while processing your request. Please try again later."
	ReplyEmpty      = "I'm processing that, but received no text response."
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message is one turn of the chat transcript.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Chat answers message given the previous turns. It never fails: problems
// with the AI backend are turned into a readable reply.
func (c *Client) Chat(ctx context.Context, message string, history []Message) string {
	if !c.Enabled() {
		return ReplyMissingKey
	}

	reply, err := c.generate(ctx, portfolioContext, chatPrompt(message, history), false)
	if err != nil {
		c.logger.Error("chat request failed", "error", err)
		return ReplyError
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return ReplyEmpty
	}
	return reply
}

func chatPrompt(message string, history []Message) string {
	var b strings.Builder
	for _, m := range history {
		if m.Role == RoleUser {
			b.WriteString("User: ")
		} else {
			b.WriteString("Assistant: ")
		}
		b.WriteString(m.Text)
		b.WriteString("\n")
	}
	b.WriteString("User: ")
	b.WriteString(message)
	b.WriteString("\nAssistant:")
	return b.String()
}
