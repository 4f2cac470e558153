// Package input provides interactive terminal input utilities.
//
// Loom uses this package for consistent user interaction when flags
// are missing and prompts are needed.
package input

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("red"))
)

// Prompt asks the user for text input with an optional default value.
// If the user presses Enter without typing anything, or input cannot be
// read at all, the default is returned.
//
// Example:
//
//	name := input.Prompt("Project name", "my-app")
//	// Displays: Project name (my-app): _
func Prompt(message, defaultValue string) string {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print(renderPrompt(message, defaultValue))

	// Read input
	input, err := reader.ReadString('\n')
	if err != nil {
		return defaultValue
	}

	// Trim whitespace
	input = strings.TrimSpace(input)

	// Return default if empty
	if input == "" {
		return defaultValue
	}

	return input
}

// PromptValidated asks for text input and re-prompts until validate
// accepts the answer. The validation error is shown before each retry,
// so the user always knows why the previous answer was rejected.
// When stdin runs out before a valid answer arrives, the rejection (or
// the read error) is returned instead, so a closed stdin cannot leave
// the prompt looping.
//
// Example:
//
//	name, err := input.PromptValidated("Project name", "", validate.Name)
func PromptValidated(message, defaultValue string, validate func(string) error) (string, error) {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print(renderPrompt(message, defaultValue))

		line, readErr := reader.ReadString('\n')
		answer := strings.TrimSpace(line)
		if answer == "" {
			answer = defaultValue
		}
		if readErr != nil && answer == "" {
			return "", fmt.Errorf("reading input: %w", readErr)
		}

		if err := validate(answer); err != nil {
			if readErr != nil {
				// No more input is coming.
				return "", err
			}
			fmt.Println(errStyle.Render("  " + err.Error()))
			continue
		}
		return answer, nil
	}
}

// renderPrompt formats the prompt label with its default hint.
func renderPrompt(message, defaultValue string) string {
	if defaultValue != "" {
		return promptStyle.Render(message) + " " +
			hintStyle.Render(fmt.Sprintf("(%s)", defaultValue)) + ": "
	}
	return promptStyle.Render(message) + ": "
}

// Confirm asks the user a yes/no question.
// Returns true if the user answers yes (y/Y/yes/YES), false otherwise.
// If defaultYes is true, pressing Enter returns true. Otherwise, returns false.
//
// Example:
//
//	if input.Confirm("Overwrite existing directory?", false) {
//	    // User explicitly said yes
//	}
//	// Displays: Overwrite existing directory? [y/N]: _
func Confirm(message string, defaultYes bool) bool {
	reader := bufio.NewReader(os.Stdin)

	// Format prompt with [Y/n] or [y/N] hint
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}

	fmt.Print(promptStyle.Render(message) + " " +
		hintStyle.Render(hint) + ": ")

	// Read input
	input, err := reader.ReadString('\n')
	if err != nil {
		return defaultYes
	}

	// Trim whitespace and convert to lowercase
	input = strings.TrimSpace(strings.ToLower(input))

	// Empty input returns default
	if input == "" {
		return defaultYes
	}

	// Check for yes answers
	return input == "y" || input == "yes"
}
