// Package prompt renders typed signatures into chat-style message lists.
//
// A rendered prompt has one system message describing the field contract,
// one user/assistant pair per demonstration, and a final user message
// carrying the live inputs. Demonstrations never share a message with the
// live inputs, so a backend that only honors the most recent message still
// sees every live field.
package prompt

import (
	"fmt"
	"strings"
)

// Role labels one side of the exchange.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single chat turn.
type Message struct {
	Role    Role
	Content string
}

// Prompt is the ordered message list handed to a backend.
type Prompt []Message

// Last returns the content of the final message, or "" for an empty prompt.
func (p Prompt) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1].Content
}

// Demo is one worked example: field values for the signature's inputs and
// the outputs a good answer would carry.
type Demo struct {
	Inputs  map[string]string
	Outputs map[string]string
}

// Render builds the message list for one generative call.
func Render(sig Signature, demos []Demo, inputs map[string]string) Prompt {
	p := make(Prompt, 0, 2*len(demos)+2)
	p = append(p, Message{Role: RoleSystem, Content: systemContent(sig)})

	for _, d := range demos {
		p = append(p,
			Message{Role: RoleUser, Content: fieldBlocks(sig.Inputs, d.Inputs)},
			Message{Role: RoleAssistant, Content: fieldBlocks(sig.Outputs, d.Outputs)},
		)
	}

	live := fieldBlocks(sig.Inputs, inputs) + "\n\n" + trailer(sig.Outputs)
	p = append(p, Message{Role: RoleUser, Content: live})
	return p
}

// systemContent describes the instruction and the numbered field contract.
func systemContent(sig Signature) string {
	var b strings.Builder
	b.WriteString(sig.Instruction)
	b.WriteString("\n\nInput fields:\n")
	for i, f := range sig.Inputs {
		fmt.Fprintf(&b, "%d. `%s`: %s\n", i+1, f.Name, f.Desc)
	}
	b.WriteString("\nOutput fields:\n")
	for i, f := range sig.Outputs {
		fmt.Fprintf(&b, "%d. `%s`: %s\n", i+1, f.Name, f.Desc)
	}
	return strings.TrimRight(b.String(), "\n")
}

// fieldBlocks lays the given fields out as bracket-marked blocks in
// signature order. Missing values render as empty blocks.
func fieldBlocks(fields []Field, values map[string]string) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[[ ## %s ## ]]\n%s", f.Name, values[f.Name])
	}
	return b.String()
}

// trailer asks for the output fields by name, in order.
func trailer(outputs []Field) string {
	if len(outputs) == 0 {
		return "Respond with the corresponding output fields."
	}
	names := make([]string, len(outputs))
	for i, f := range outputs {
		names[i] = "`" + f.Name + "`"
	}
	if len(names) == 1 {
		return fmt.Sprintf("Respond with the corresponding output field %s.", names[0])
	}
	return fmt.Sprintf("Respond with the corresponding output fields, starting with the field %s, then %s.",
		names[0], strings.Join(names[1:], ", then "))
}
