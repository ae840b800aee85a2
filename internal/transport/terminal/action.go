package terminal

import (
	"strings"

	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/domain"
)

// ActionKind is the session operation an input line maps to.
type ActionKind int

const (
	ActionAnswer ActionKind = iota + 1
	ActionHelp
	ActionAcknowledge
	ActionQuit
)

// Action is one parsed input line.
type Action struct {
	Kind  ActionKind
	Label domain.Label
	Help  domain.HelpKind
}

var keywords = map[string]Action{
	"":          {Kind: ActionAcknowledge},
	"n":         {Kind: ActionAcknowledge},
	"next":      {Kind: ActionAcknowledge},
	"ok":        {Kind: ActionAcknowledge},
	"q":         {Kind: ActionQuit},
	"quit":      {Kind: ActionQuit},
	"sair":      {Kind: ActionQuit},
	"h":         {Kind: ActionHelp, Help: domain.HelpHint},
	"hint":      {Kind: ActionHelp, Help: domain.HelpHint},
	"dica":      {Kind: ActionHelp, Help: domain.HelpHint},
	"e":         {Kind: ActionHelp, Help: domain.HelpEliminate},
	"eliminate": {Kind: ActionHelp, Help: domain.HelpEliminate},
	"eliminar":  {Kind: ActionHelp, Help: domain.HelpEliminate},
	"s":         {Kind: ActionHelp, Help: domain.HelpSkip},
	"skip":      {Kind: ActionHelp, Help: domain.HelpSkip},
	"pular":     {Kind: ActionHelp, Help: domain.HelpSkip},
}

// ParseAction maps a typed line to an action. Letters a-d answer, help and
// navigation accept English and Portuguese words.
func ParseAction(line string) (Action, bool) {
	word := strings.ToLower(strings.TrimSpace(line))
	if action, ok := keywords[word]; ok {
		return action, true
	}
	if label, ok := domain.ParseLabel(word); ok {
		return Action{Kind: ActionAnswer, Label: label}, true
	}
	return Action{}, false
}
