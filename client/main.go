package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// Minimal interactive client for poking at the game server. Commands:
//
//	pass                      commit a pass
//	exchange 0 2 5            exchange the given rack slots
//	move r,c,letter[,idx] ... commit a word placement
func main() {
	addr := flag.String("addr", "localhost:8080", "server address")
	gameID := flag.String("game", "dev-game", "game id to join")
	name := flag.String("name", "tester", "player name")
	role := flag.String("role", "host", "host or joiner")
	flag.Parse()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	// Read loop
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}
			log.Printf("<- RECV: %s", string(message))
		}
	}()

	join := map[string]interface{}{
		"type":   "join",
		"gameId": *gameID,
		"payload": map[string]string{
			"name": *name,
			"role": *role,
		},
	}
	if err := sendJSON(c, join); err != nil {
		log.Fatalf("Join failed: %v", err)
	}
	log.Printf("-> SENT: join as %s (%s)", *name, *role)

	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-done:
			return
		case <-interrupt:
			log.Println("Interrupt received, closing connection.")
			err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			if err != nil {
				log.Println("Write close error:", err)
			}
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		default:
			text, _ := reader.ReadString('\n')
			action, ok := parseCommand(strings.TrimSpace(text))
			if !ok {
				continue
			}
			env := map[string]interface{}{
				"type":    "action",
				"gameId":  *gameID,
				"payload": action,
			}
			if err := sendJSON(c, env); err != nil {
				log.Println("Write error:", err)
				return
			}
			log.Printf("-> SENT: %v", action["type"])
		}
	}
}

func sendJSON(c *websocket.Conn, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.WriteMessage(websocket.TextMessage, data)
}

func parseCommand(text string) (map[string]interface{}, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, false
	}

	switch fields[0] {
	case "pass":
		return map[string]interface{}{"type": "commit_pass"}, true

	case "exchange":
		var indexes []int
		for _, f := range fields[1:] {
			n, err := strconv.Atoi(f)
			if err != nil {
				log.Printf("Bad rack index %q", f)
				return nil, false
			}
			indexes = append(indexes, n)
		}
		return map[string]interface{}{
			"type": "commit_exchange",
			"data": map[string]interface{}{"rackIndexes": indexes},
		}, true

	case "move":
		var placements []map[string]interface{}
		for _, f := range fields[1:] {
			parts := strings.Split(f, ",")
			if len(parts) < 3 {
				log.Printf("Bad placement %q, want row,col,letter[,rackIndex]", f)
				return nil, false
			}
			row, err1 := strconv.Atoi(parts[0])
			col, err2 := strconv.Atoi(parts[1])
			if err1 != nil || err2 != nil {
				log.Printf("Bad placement coordinates in %q", f)
				return nil, false
			}
			rackIndex := 0
			if len(parts) > 3 {
				rackIndex, _ = strconv.Atoi(parts[3])
			}
			placements = append(placements, map[string]interface{}{
				"pos":       map[string]int{"row": row, "col": col},
				"letter":    parts[2],
				"rackIndex": rackIndex,
			})
		}
		if len(placements) == 0 {
			return nil, false
		}
		return map[string]interface{}{
			"type": "commit_move",
			"data": map[string]interface{}{"placements": placements},
		}, true

	default:
		log.Printf("Unknown command %q (want pass, exchange, move)", fields[0])
		return nil, false
	}
}
