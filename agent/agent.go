// Package agent implements the interactive AI assistant backing the
// "assist" subcommand. It holds a single Gemini chat session seeded
// with the current state of the portfolio.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

const systemPrompt = `You are a financial assistant for a personal portfolio
tracking tool. Answer the user's questions about their portfolio using the
report below. Be concise, and when asked for figures, quote them from the
report rather than recomputing. If a question cannot be answered from the
report, say so.

Current portfolio report:

`

// Agent is the AI assistant that handles the chat session.
type Agent struct {
	w      io.Writer
	r      *bufio.Reader
	report string
	model  string
	chat   *genai.Chat
}

// New creates a new Agent. It takes an io.Writer for the agent's output
// (e.g., os.Stdout), an io.Reader for user input (e.g., os.Stdin), and a
// markdown report describing the current portfolio, used to seed the chat.
func New(w io.Writer, r io.Reader, report string) *Agent {
	return &Agent{
		w:      w,
		r:      bufio.NewReader(r),
		report: report,
		model:  defaultModel,
	}
}

// Start creates the underlying Gemini chat session.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt + a.report}},
		},
	}
	chat, err := client.Chats.Create(ctx, a.model, config, nil)
	if err != nil {
		return err
	}
	a.chat = chat
	return nil
}

// Ask sends a single question and returns the assistant's answer.
func (a *Agent) Ask(ctx context.Context, question string) (string, error) {
	resp, err := a.chat.Send(ctx, &genai.Part{Text: question})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from the assistant")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

const prompt = "assist> "

// Run starts the interactive REPL session for the agent. Prompts given as
// arguments are consumed first, then input is read from the reader.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to foliotrack assist. Type 'bye' to exit.")

	// REPL loop
	for {
		fmt.Fprint(a.w, prompt)
		var input string

		// Flush prompts from the list and then ask the user.
		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		answer, err := a.Ask(ctx, input)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, answer)
	}
}
