package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// send marshals and sends a command to the server.
func send(c *websocket.Conn, cmd map[string]string) error {
	data, err := json.Marshal(cmd)
	if err != nil {
		return err
	}
	return c.WriteMessage(websocket.TextMessage, data)
}

var keyToDir = map[string]string{
	"w": "up",
	"s": "down",
	"a": "left",
	"d": "right",
}

func main() {
	addr := flag.String("addr", "localhost:3000", "server address")
	roomID := flag.String("room", "lobby", "room to join")
	name := flag.String("name", "Player", "display name")
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

	log.Printf("Joining room %q as %q...", *roomID, *name)
	if err := send(c, map[string]string{"type": "join", "room": *roomID, "name": *name}); err != nil {
		log.Println("Write error:", err)
		return
	}
	if err := send(c, map[string]string{"type": "ready"}); err != nil {
		log.Println("Write error:", err)
		return
	}

	log.Println("Client started. Keys: w/a/s/d to play, 'reset' to reset the room.")

	// Write loop
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
			text = strings.TrimSpace(text)

			if dir, ok := keyToDir[text]; ok {
				if err := send(c, map[string]string{"type": "input", "dir": dir}); err != nil {
					log.Println("Write error:", err)
					return
				}
				log.Printf("-> SENT: input %s", dir)
			} else if text == "reset" {
				if err := send(c, map[string]string{"type": "reset"}); err != nil {
					log.Println("Write error:", err)
					return
				}
				log.Println("-> SENT: reset")
			}
		}
	}
}
