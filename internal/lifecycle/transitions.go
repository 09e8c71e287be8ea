package lifecycle

import (
	"fmt"

	"github.com/qwerty-development/revive-webapp/internal/models"
)

type Action string

const (
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
	ActionEdit     Action = "edit"
	ActionDelete   Action = "delete"
)

func ParseAction(s string) (Action, error) {
	a := Action(s)
	if _, ok := table[a]; !ok {
		return "", fmt.Errorf("unknown action %q", s)
	}
	return a, nil
}

type party uint8

const (
	byRequester party = 1 << iota
	byOwner
)

type rule struct {
	from models.Status
	// to is empty for ActionDelete: the record is removed.
	to models.Status
	by party
}

var table = map[Action]rule{
	ActionApprove:  {from: models.StatusPending, to: models.StatusApproved, by: byOwner},
	ActionReject:   {from: models.StatusPending, to: models.StatusRejected, by: byOwner},
	ActionDelete:   {from: models.StatusPending, by: byOwner | byRequester},
	ActionEdit:     {from: models.StatusPending, to: models.StatusPending, by: byRequester},
	ActionCancel:   {from: models.StatusApproved, to: models.StatusCanceled, by: byRequester},
	ActionComplete: {from: models.StatusApproved, to: models.StatusCompleted, by: byOwner},
}

// Next returns the status a request in from moves to when action is applied.
func Next(from models.Status, action Action) (models.Status, error) {
	r, ok := table[action]
	if !ok {
		return "", fmt.Errorf("unknown action %q", action)
	}
	if !from.Valid() || from != r.from {
		return "", &models.TransitionError{From: from, Action: string(action)}
	}
	return r.to, nil
}

// Permits reports whether an actor with the given relation to the request may perform action.
func Permits(action Action, isOwner, isRequester bool) bool {
	r, ok := table[action]
	if !ok {
		return false
	}
	return (isOwner && r.by&byOwner != 0) || (isRequester && r.by&byRequester != 0)
}
