package main

import (
	"bufio"
	"encoding/binary"
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

const (
	MsgTypeCreateRoom     = 101
	MsgTypeJoinRoom       = 102
	MsgTypeStartGame      = 110
	MsgTypeDescriberReady = 111
	MsgTypeCardCorrect    = 112
	MsgTypeCardForbidden  = 113
	MsgTypeCardSkip       = 114
)

// send formats and sends a message to the WebSocket server.
func send(c *websocket.Conn, msgID uint16, data []byte) error {
	packet := make([]byte, 4+len(data))
	binary.BigEndian.PutUint16(packet[0:2], msgID)
	binary.BigEndian.PutUint16(packet[2:4], uint16(len(data)))
	copy(packet[4:], data)

	return c.WriteMessage(websocket.BinaryMessage, packet)
}

func sendJSON(c *websocket.Conn, msgID uint16, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return send(c, msgID, data)
}

func main() {
	addr := flag.String("addr", "localhost:8080", "server address")
	name := flag.String("name", "tester", "display name")
	join := flag.String("join", "", "room code to join instead of creating")
	team := flag.String("team", "blue", "team to join (blue/red)")
	mode := flag.String("mode", "classic", "room mode when creating (classic/practice)")
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
			if len(message) < 4 {
				log.Printf("Received invalid packet of size %d", len(message))
				continue
			}
			msgID := binary.BigEndian.Uint16(message[0:2])
			data := message[4:]
			log.Printf("<- RECV (ID: %d): %s", msgID, string(data))
		}
	}()

	if *join != "" {
		log.Printf("Joining room %s as %s (%s team)", *join, *name, *team)
		sendJSON(c, MsgTypeJoinRoom, map[string]string{
			"code": *join, "name": *name, "team": *team,
		})
	} else {
		log.Printf("Creating %s room as %s", *mode, *name)
		sendJSON(c, MsgTypeCreateRoom, map[string]string{
			"name": *name, "mode": *mode, "team": *team,
		})
	}

	log.Println("Commands: start | ready | correct <card> | buzz <card> | skip <card>")

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
			fields := strings.Fields(text)
			if len(fields) == 0 {
				continue
			}

			var err error
			switch fields[0] {
			case "start":
				err = send(c, MsgTypeStartGame, []byte("{}"))
			case "ready":
				err = send(c, MsgTypeDescriberReady, []byte("{}"))
			case "correct", "buzz", "skip":
				if len(fields) < 2 {
					log.Println("Usage:", fields[0], "<card-id>")
					continue
				}
				msgID := uint16(MsgTypeCardCorrect)
				if fields[0] == "buzz" {
					msgID = MsgTypeCardForbidden
				} else if fields[0] == "skip" {
					msgID = MsgTypeCardSkip
				}
				err = sendJSON(c, msgID, map[string]string{"card_id": fields[1]})
			default:
				log.Println("Unknown command:", fields[0])
				continue
			}
			if err != nil {
				log.Println("Write error:", err)
				return
			}
		}
	}
}
