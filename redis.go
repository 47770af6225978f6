package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

type sidekiqJob struct {
	Class string            `json:"class"`
	Args  []json.RawMessage `json:"args"`
	Queue string            `json:"queue"`
}

func writeCommand(w *bufio.ReadWriter, cmd string, args ...string) error {
	if _, err := fmt.Fprintf(w, "*%d\r\n", 1+len(args)); err != nil {
		return err
	}
	if err := writeBulk(w, cmd); err != nil {
		return err
	}
	for _, a := range args {
		if err := writeBulk(w, a); err != nil {
			return err
		}
	}
	return w.Flush()
}

func writeBulk(w *bufio.ReadWriter, s string) error {
	if _, err := fmt.Fprintf(w, "$%d\r\n%s\r\n", len(s), s); err != nil {
		return err
	}
	return nil
}

var ioEOF = errors.New("eof")

func readLine(r *bufio.Reader) (string, error) {
	b, err := r.ReadBytes('\n')
	if err != nil {
		return "", ioEOF
	}
	if len(b) >= 2 && b[len(b)-2] == '\r' {
		b = b[:len(b)-2]
	}
	return string(b), nil
}

func readOK(rw *bufio.ReadWriter) error {
	line, err := readLine(rw.Reader)
	if err != nil {
		return err
	}
	if len(line) > 0 && line[0] == '+' {
		return nil
	}
	return fmt.Errorf("redis not OK: %s", line)
}

// readBulk reads one "$<len>" bulk string. A nil bulk ("$-1") reports ok=false.
func readBulk(r *bufio.Reader) (value string, ok bool, err error) {
	header, err := readLine(r)
	if err != nil {
		return "", false, err
	}
	return readBulkBody(r, header)
}

func readBulkBody(r *bufio.Reader, header string) (string, bool, error) {
	if len(header) == 0 || header[0] != '$' {
		return "", false, fmt.Errorf("expected bulk string, got %q", header)
	}
	l, err := strconv.Atoi(header[1:])
	if err != nil {
		return "", false, fmt.Errorf("bad bulk length %q", header)
	}
	if l < 0 {
		return "", false, nil
	}
	buf := make([]byte, l+2)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", false, ioEOF
	}
	if buf[l] != '\r' || buf[l+1] != '\n' {
		return "", false, fmt.Errorf("bulk string of length %d not CRLF terminated", l)
	}
	return string(buf[:l]), true, nil
}

// readBRPOP reads a BRPOP reply. A nil or empty reply is the timeout case and
// returns empty key and payload with no error; a reply cut short is an error so
// the caller drops the connection instead of treating it as a timeout.
func readBRPOP(rw *bufio.ReadWriter) (key string, payload string, err error) {
	line, err := readLine(rw.Reader)
	if err != nil {
		return "", "", err
	}
	if len(line) == 0 {
		return "", "", fmt.Errorf("empty reply")
	}
	switch line[0] {
	case '*':
		n, err := strconv.Atoi(line[1:])
		if err != nil {
			return "", "", fmt.Errorf("bad array length %q", line)
		}
		if n <= 0 {
			return "", "", nil
		}
		if n != 2 {
			return "", "", fmt.Errorf("BRPOP reply has %d elements, want 2", n)
		}
		var ok bool
		if key, ok, err = readBulk(rw.Reader); err != nil || !ok {
			return "", "", truncatedReply("key", err)
		}
		if payload, ok, err = readBulk(rw.Reader); err != nil || !ok {
			return "", "", truncatedReply("payload", err)
		}
		return key, payload, nil
	case '$':
		payload, _, err := readBulkBody(rw.Reader, line)
		if err != nil {
			return "", "", err
		}
		return "", payload, nil
	case '-':
		return "", "", fmt.Errorf("redis error: %s", line)
	default:
		return "", "", fmt.Errorf("unexpected reply: %s", line)
	}
}

func truncatedReply(part string, err error) error {
	if err == nil {
		return fmt.Errorf("BRPOP reply has nil %s", part)
	}
	return fmt.Errorf("BRPOP reply truncated reading %s: %w", part, err)
}
