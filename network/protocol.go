package network

import (
	"encoding/json"
	"fmt"

	"github.com/wfunc/scrabbleserver/game"
)

// MessageType is the envelope discriminator on the replication
// channel.
type MessageType string

const (
	MsgJoin     MessageType = "join"
	MsgState    MessageType = "state"
	MsgAction   MessageType = "action"
	MsgPresence MessageType = "presence"
	MsgError    MessageType = "error"
)

// Role distinguishes the authoritative participant from the follower.
// It is fixed at join time and never renegotiated.
type Role string

const (
	RoleHost   Role = "host"
	RoleJoiner Role = "joiner"
)

// Valid reports whether the role is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleHost || r == RoleJoiner
}

// Envelope is every message on the wire.
type Envelope struct {
	Type    MessageType     `json:"type"`
	GameID  string          `json:"gameId,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEnvelope marshals the payload into an envelope.
func NewEnvelope(t MessageType, gameID string, payload interface{}) (*Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Envelope{Type: t, GameID: gameID, Payload: raw}, nil
}

// JoinPayload is sent as the first message on a connection.
type JoinPayload struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// Participant identifies a session member in presence broadcasts.
type Participant struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// PresencePayload is echoed to all members whenever membership
// changes.
type PresencePayload struct {
	Count        int           `json:"count"`
	Participants []Participant `json:"participants"`
}

// ErrorPayload carries a user-facing failure. Only ErrMsgGameFull is
// fatal for the session; everything else is recoverable and must not
// stop reconnection.
type ErrorPayload struct {
	Message string            `json:"message"`
	Details []game.ValidationError `json:"details,omitempty"`
}

// ErrMsgGameFull is the one fatal rejection: a third participant was
// turned away and must stop retrying.
const ErrMsgGameFull = "Game is full"

// ActionKind tags the members of the Action union.
type ActionKind string

const (
	// Transient, advisory only. Relayed to the peer's view, never
	// touches authoritative state, superseded by the next state
	// broadcast.
	ActionTilePlaced  ActionKind = "tile_placed"
	ActionTileRemoved ActionKind = "tile_removed"
	// Commit requests. The authority re-derives the turn advance; it
	// never trusts the sender's view of the resulting state.
	ActionCommitMove     ActionKind = "commit_move"
	ActionCommitPass     ActionKind = "commit_pass"
	ActionCommitExchange ActionKind = "commit_exchange"
)

// Action is a closed union over the known action kinds. Adding a kind
// means adding a type here and a case to DecodeAction, which keeps the
// dispatch exhaustive at compile time.
type Action interface {
	Kind() ActionKind
}

// TilePlaced mirrors a provisional placement to the peer.
type TilePlaced struct {
	Pos       game.Position `json:"pos"`
	Letter    string        `json:"letter"`
	RackIndex int           `json:"rackIndex"`
}

func (TilePlaced) Kind() ActionKind { return ActionTilePlaced }

// TileRemoved retracts a provisional placement.
type TileRemoved struct {
	Pos game.Position `json:"pos"`
}

func (TileRemoved) Kind() ActionKind { return ActionTileRemoved }

// CommitMove asks the authority to commit a word placement.
type CommitMove struct {
	Placements []game.Placement `json:"placements"`
}

func (CommitMove) Kind() ActionKind { return ActionCommitMove }

// CommitPass asks the authority to record a pass.
type CommitPass struct{}

func (CommitPass) Kind() ActionKind { return ActionCommitPass }

// CommitExchange asks the authority to exchange the named rack slots.
type CommitExchange struct {
	RackIndexes []int `json:"rackIndexes"`
}

func (CommitExchange) Kind() ActionKind { return ActionCommitExchange }

type actionWire struct {
	Type ActionKind      `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// EncodeAction wraps an action with its kind tag.
func EncodeAction(a Action) ([]byte, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return json.Marshal(actionWire{Type: a.Kind(), Data: data})
}

// DecodeAction parses a tagged action. An unknown kind is an error,
// not a silently ignored message.
func DecodeAction(raw []byte) (Action, error) {
	var wire actionWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}

	var (
		action Action
		err    error
	)
	switch wire.Type {
	case ActionTilePlaced:
		var a TilePlaced
		err = json.Unmarshal(wire.Data, &a)
		action = a
	case ActionTileRemoved:
		var a TileRemoved
		err = json.Unmarshal(wire.Data, &a)
		action = a
	case ActionCommitMove:
		var a CommitMove
		err = json.Unmarshal(wire.Data, &a)
		action = a
	case ActionCommitPass:
		var a CommitPass
		if len(wire.Data) > 0 {
			err = json.Unmarshal(wire.Data, &a)
		}
		action = a
	case ActionCommitExchange:
		var a CommitExchange
		err = json.Unmarshal(wire.Data, &a)
		action = a
	default:
		return nil, fmt.Errorf("unknown action kind %q", wire.Type)
	}
	if err != nil {
		return nil, err
	}
	return action, nil
}

// IsCommit reports whether the action mutates authoritative state.
func IsCommit(a Action) bool {
	switch a.Kind() {
	case ActionCommitMove, ActionCommitPass, ActionCommitExchange:
		return true
	}
	return false
}
