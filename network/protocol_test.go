package network

import (
	"encoding/json"
	"testing"

	"github.com/wfunc/scrabbleserver/game"
)

func roundTrip(t *testing.T, a Action) Action {
	t.Helper()
	raw, err := EncodeAction(a)
	if err != nil {
		t.Fatalf("EncodeAction failed: %v", err)
	}
	decoded, err := DecodeAction(raw)
	if err != nil {
		t.Fatalf("DecodeAction failed: %v", err)
	}
	if decoded.Kind() != a.Kind() {
		t.Fatalf("Expected kind %q, got %q", a.Kind(), decoded.Kind())
	}
	return decoded
}

func TestActionRoundTrip_TilePlaced(t *testing.T) {
	in := TilePlaced{Pos: game.Position{Row: 7, Col: 8}, Letter: "ש", RackIndex: 3}
	out, ok := roundTrip(t, in).(TilePlaced)
	if !ok {
		t.Fatal("Decoded action has the wrong type")
	}
	if out != in {
		t.Errorf("Expected %+v, got %+v", in, out)
	}
}

func TestActionRoundTrip_TileRemoved(t *testing.T) {
	in := TileRemoved{Pos: game.Position{Row: 2, Col: 11}}
	out, ok := roundTrip(t, in).(TileRemoved)
	if !ok {
		t.Fatal("Decoded action has the wrong type")
	}
	if out != in {
		t.Errorf("Expected %+v, got %+v", in, out)
	}
}

func TestActionRoundTrip_CommitMove(t *testing.T) {
	in := CommitMove{Placements: []game.Placement{
		{Pos: game.Position{Row: 7, Col: 7}, Letter: "א", RackIndex: 0},
		{Pos: game.Position{Row: 7, Col: 8}, Letter: "ב", RackIndex: 4},
	}}
	out, ok := roundTrip(t, in).(CommitMove)
	if !ok {
		t.Fatal("Decoded action has the wrong type")
	}
	if len(out.Placements) != 2 {
		t.Fatalf("Expected 2 placements, got %d", len(out.Placements))
	}
	if out.Placements[1] != in.Placements[1] {
		t.Errorf("Expected %+v, got %+v", in.Placements[1], out.Placements[1])
	}
}

func TestActionRoundTrip_CommitPass(t *testing.T) {
	if _, ok := roundTrip(t, CommitPass{}).(CommitPass); !ok {
		t.Fatal("Decoded action has the wrong type")
	}
}

func TestActionRoundTrip_CommitExchange(t *testing.T) {
	in := CommitExchange{RackIndexes: []int{0, 2, 6}}
	out, ok := roundTrip(t, in).(CommitExchange)
	if !ok {
		t.Fatal("Decoded action has the wrong type")
	}
	if len(out.RackIndexes) != 3 || out.RackIndexes[2] != 6 {
		t.Errorf("Expected rack indexes %v, got %v", in.RackIndexes, out.RackIndexes)
	}
}

func TestDecodeActionUnknownKind(t *testing.T) {
	if _, err := DecodeAction([]byte(`{"type":"shuffle_board","data":{}}`)); err == nil {
		t.Fatal("Expected an error for an unknown action kind")
	}
}

func TestDecodeActionBadJSON(t *testing.T) {
	if _, err := DecodeAction([]byte(`not json`)); err == nil {
		t.Fatal("Expected an error for malformed input")
	}
}

func TestIsCommit(t *testing.T) {
	commits := []Action{CommitMove{}, CommitPass{}, CommitExchange{}}
	for _, a := range commits {
		if !IsCommit(a) {
			t.Errorf("Expected %q to be a commit", a.Kind())
		}
	}
	transient := []Action{TilePlaced{}, TileRemoved{}}
	for _, a := range transient {
		if IsCommit(a) {
			t.Errorf("Expected %q to be transient", a.Kind())
		}
	}
}

func TestRoleValid(t *testing.T) {
	if !RoleHost.Valid() || !RoleJoiner.Valid() {
		t.Error("Both known roles should be valid")
	}
	if Role("spectator").Valid() {
		t.Error("Unknown roles should be invalid")
	}
}

func TestNewEnvelope(t *testing.T) {
	env, err := NewEnvelope(MsgError, "game-1", ErrorPayload{Message: ErrMsgGameFull})
	if err != nil {
		t.Fatalf("NewEnvelope failed: %v", err)
	}
	if env.Type != MsgError || env.GameID != "game-1" {
		t.Errorf("Unexpected envelope header: %+v", env)
	}

	var payload ErrorPayload
	if err := json.Unmarshal(env.Payload, &payload); err != nil {
		t.Fatalf("Payload did not round-trip: %v", err)
	}
	if payload.Message != ErrMsgGameFull {
		t.Errorf("Expected message %q, got %q", ErrMsgGameFull, payload.Message)
	}
}
