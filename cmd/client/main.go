package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/kiryu-dev/chess/internal/domain"
	"github.com/kiryu-dev/chess/pkg/utils"
	"github.com/pkg/errors"
)

func main() {
	host := flag.String("host", "localhost:8080", "server address")
	clientUuid := flag.String("key", "", "client key used to resume an unfinished game")
	flag.Parse()
	if *clientUuid == "" {
		*clientUuid = uuid.NewString()
	}
	u := url.URL{Scheme: "ws", Host: *host, Path: "/game"}
	header := http.Header{}
	header.Set(domain.ClientUuidHeader, *clientUuid)
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), header)
	if err != nil {
		log.Fatal("dial: " + err.Error())
	}
	defer func() {
		_ = conn.Close()
	}()
	client := newClient(conn)
	if err := client.handleActions(); err != nil {
		log.Fatal(err)
	}
}

type client struct {
	conn    *websocket.Conn
	scanner *bufio.Scanner
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn:    conn,
		scanner: bufio.NewScanner(os.Stdin),
	}
}

func (c *client) handleActions() error {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return errors.WithMessage(err, "read msg")
		}
		msg, err := utils.DecodeJson[domain.Message](data)
		if err != nil {
			return errors.WithMessage(err, "decode msg")
		}
		var snapshot domain.Snapshot
		switch msg.Type {
		case domain.StartGame:
			v, err := utils.UnmarshalJson[domain.StartGamePayload](msg.Payload)
			if err != nil {
				return errors.WithMessage(err, "unmarshal json to 'StartGamePayload' type")
			}
			fmt.Printf("client key: %s\n", v.ClientUuid)
			snapshot = v.Snapshot
		case domain.GameUpdate:
			v, err := utils.UnmarshalJson[domain.GameUpdatePayload](msg.Payload)
			if err != nil {
				return errors.WithMessage(err, "unmarshal json to 'GameUpdatePayload' type")
			}
			snapshot = v.Snapshot
		default:
			continue
		}
		printSnapshot(snapshot)
		if snapshot.Status.IsTerminal() {
			return nil
		}
		if err := c.requestCell(); err != nil {
			return errors.WithMessage(err, "request cell")
		}
	}
}

func (c *client) requestCell() error {
	var (
		pos domain.Position
		err error
	)
	for {
		fmt.Print("select cell: ")
		pos, err = c.selectCell()
		if err == nil {
			break
		}
		fmt.Println(err)
	}
	data, err := utils.MarshalJson(domain.Message{
		Type:    domain.SelectCell,
		Payload: domain.SelectCellPayload{Position: pos},
	})
	if err != nil {
		return errors.WithMessage(err, "marshal msg")
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return errors.WithMessage(err, "write msg")
	}
	return nil
}

// selectCell accepts "e2" or "4 1".
func (c *client) selectCell() (domain.Position, error) {
	if ok := c.scanner.Scan(); !ok {
		if err := c.scanner.Err(); err != nil {
			return domain.Position{}, err
		}
		os.Exit(0)
	}
	return parseCell(c.scanner.Text())
}

func parseCell(text string) (domain.Position, error) {
	fields := strings.Fields(text)
	switch len(fields) {
	case 1:
		return domain.ParsePosition(strings.ToLower(fields[0]))
	case 2:
		x, err := strconv.Atoi(fields[0])
		if err != nil {
			return domain.Position{}, err
		}
		y, err := strconv.Atoi(fields[1])
		if err != nil {
			return domain.Position{}, err
		}
		pos := domain.Position{X: x, Y: y}
		if !domain.IsBounded(pos) {
			return domain.Position{}, errors.WithMessagef(domain.ErrInvalidPosition, "%d %d", x, y)
		}
		return pos, nil
	default:
		return domain.Position{}, errors.WithMessagef(domain.ErrInvalidPosition, "%q", text)
	}
}

func printSnapshot(s domain.Snapshot) {
	highlighted := make(map[domain.Position]bool, len(s.Highlighted))
	for _, pos := range s.Highlighted {
		highlighted[pos] = true
	}
	fmt.Printf("\033[H\033[J")
	for y := domain.BoardSize - 1; y >= 0; y-- {
		fmt.Printf("%d ", y+1)
		for x := 0; x < domain.BoardSize; x++ {
			pos := domain.Position{X: x, Y: y}
			switch p := s.Board[y][x]; {
			case highlighted[pos] && p == nil:
				fmt.Print("* ")
			case highlighted[pos]:
				fmt.Printf("%c*", p.Symbol())
			case p == nil:
				fmt.Print(". ")
			default:
				fmt.Printf("%c ", p.Symbol())
			}
		}
		fmt.Println()
	}
	fmt.Println("  a b c d e f g h")
	fmt.Println(s.StatusLine)
}
