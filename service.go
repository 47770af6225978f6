package main

import (
	"bufio"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"hypothesis_worker/hypothesis"
)

type comparisonOutcome struct {
	comparison Comparison
	err        error
}

func processComparison(db *sql.DB, comparisonID int64, cfg config, rng *rand.Rand) error {
	runA, runB, err := fetchComparison(db, comparisonID)
	if err != nil {
		return err
	}
	a, err := fetchRunSamples(db, runA)
	if err != nil {
		return fmt.Errorf("fetch samples failed: %w", err)
	}
	b, err := fetchRunSamples(db, runB)
	if err != nil {
		return fmt.Errorf("fetch samples failed: %w", err)
	}

	out, elapsed, memBytes := measurePeakResidentMemory(func() (comparisonOutcome, float64) {
		start := time.Now()
		c, err := compareGroups(a, b, cfg.compareOptions(), rng)
		return comparisonOutcome{c, err}, time.Since(start).Seconds()
	})
	if out.err != nil {
		return fmt.Errorf("comparison %d: %w", comparisonID, out.err)
	}
	c := out.comparison
	if err := insertComparisonResult(db, comparisonID, c, elapsed, memBytes); err != nil {
		return fmt.Errorf("insert comparison_result failed: %w", err)
	}
	log.Printf("processed comparison=%d n_a=%d n_b=%d t=%.4f df=%.2f p=%.6f d=%.3f effect=%s duration=%.6fs memory_bytes=%.0f\n",
		comparisonID, c.SizeA, c.SizeB, c.Test.T, c.Test.DF, c.Test.P, c.CohensD, c.Effect, elapsed, memBytes)
	return nil
}

type redisTarget struct {
	Host     string
	Password string
	DB       int
}

func parseRedisURL(raw string) (redisTarget, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return redisTarget{}, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	if u.Scheme == "unix" {
		return redisTarget{}, errors.New("unix sockets not supported by this worker")
	}
	if u.Host == "" {
		return redisTarget{}, fmt.Errorf("invalid REDIS_URL %q: missing host", raw)
	}
	t := redisTarget{Host: u.Host}
	t.Password, _ = u.User.Password()
	if parts := strings.TrimPrefix(u.Path, "/"); parts != "" {
		if i, err := strconv.Atoi(parts); err == nil {
			t.DB = i
		}
	}
	return t, nil
}

func dialRedis(target redisTarget) (net.Conn, *bufio.ReadWriter, error) {
	conn, err := net.DialTimeout("tcp", target.Host, 5*time.Second)
	if err != nil {
		return nil, nil, fmt.Errorf("redis connect failed: %w", err)
	}
	rw := bufio.NewReadWriter(bufio.NewReader(conn), bufio.NewWriter(conn))
	if target.Password != "" {
		if err := writeCommand(rw, "AUTH", target.Password); err == nil {
			err = readOK(rw)
		}
		if err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("redis auth failed: %w", err)
		}
	}
	if target.DB != 0 {
		if err := writeCommand(rw, "SELECT", strconv.Itoa(target.DB)); err == nil {
			err = readOK(rw)
		}
		if err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("redis select failed: %w", err)
		}
	}
	return conn, rw, nil
}

func newReconnectBackOff() *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 30 * time.Second
	bo.MaxElapsedTime = 0
	return bo
}

func runService(db *sql.DB, cfg config, rng *rand.Rand) {
	target, err := parseRedisURL(cfg.RedisURL)
	if err != nil {
		log.Fatal(err)
	}
	queue := "queue:" + cfg.Queue
	bo := newReconnectBackOff()

	for {
		conn, rw, err := dialRedis(target)
		if err != nil {
			wait := bo.NextBackOff()
			log.Printf("%v; retrying in %s", err, wait)
			time.Sleep(wait)
			continue
		}
		bo.Reset()
		log.Printf("listening on %s", queue)

		for {
			if err := writeCommand(rw, "BRPOP", queue, "5"); err != nil {
				log.Printf("redis write error: %v", err)
				break
			}
			_, payload, err := readBRPOP(rw)
			if err != nil {
				if err != ioEOF {
					log.Printf("redis read error: %v", err)
				}
				break
			}
			if payload == "" {
				continue // timeout
			}
			id, err := comparisonIDFromPayload(payload)
			if err != nil {
				log.Printf("skipping job: %v", err)
				continue
			}
			if err := processComparison(db, id, cfg, rng); err != nil {
				if errors.Is(err, hypothesis.ErrInvalidParameter) {
					log.Printf("rejected comparison=%d: %v", id, err)
					continue
				}
				log.Printf("process error: %v", err)
			}
		}
		conn.Close()
		time.Sleep(bo.NextBackOff())
	}
}
