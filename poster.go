package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/qnd101/PenFootball-GameServer/lobby"
)

const (
	posterBufSize = 256
	postTimeout   = 10 * time.Second
)

var errPosterFull = errors.New("result queue full")

// credentials is the login body the main server expects
type credentials struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
}

// Poster delivers finished duel results to the main server from a
// background writer. Post never blocks the caller.
type Poster struct {
	http      *http.Client
	resultURL string
	loginURL  string
	creds     credentials
	db        *DB
	log       logrus.FieldLogger
	records   chan lobby.Result

	mu    sync.Mutex
	token string
}

func NewPoster(base *url.URL, resultPath, loginPath string, creds credentials, db *DB, log logrus.FieldLogger) *Poster {
	p := &Poster{
		http:      &http.Client{Timeout: postTimeout},
		resultURL: base.JoinPath(resultPath).String(),
		loginURL:  base.JoinPath(loginPath).String(),
		creds:     creds,
		db:        db,
		log:       log.WithField("component", "poster"),
		records:   make(chan lobby.Result, posterBufSize),
	}
	if db != nil {
		if t, err := db.GetSetting(settingPosterToken); err != nil {
			p.log.WithError(err).Warn("could not load saved token")
		} else {
			p.token = t
		}
	}
	return p
}

// Post implements tick.ResultSink. The record is dropped if the writer is
// too far behind.
func (p *Poster) Post(_ context.Context, r lobby.Result) error {
	select {
	case p.records <- r:
		return nil
	default:
		p.log.WithField("result", r).Warn("dropping result, queue full")
		return errPosterFull
	}
}

// Run is the background writer. On shutdown it tries to deliver what is
// still queued before returning.
func (p *Poster) Run(ctx context.Context) error {
	for {
		select {
		case r := <-p.records:
			p.deliver(ctx, r)
		case <-ctx.Done():
			p.drain()
			return nil
		}
	}
}

func (p *Poster) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), postTimeout)
	defer cancel()
	for {
		select {
		case r := <-p.records:
			p.deliver(ctx, r)
		default:
			return
		}
	}
}

// deliver posts r, logging in again and retrying once on failure.
func (p *Poster) deliver(ctx context.Context, r lobby.Result) {
	log := p.log.WithField("result", r)
	err := p.post(ctx, r)
	if err == nil {
		log.Info("result posted")
		return
	}
	log.WithError(err).Warn("post failed, logging in again")
	if err := p.login(ctx); err != nil {
		log.WithError(err).Error("login failed, result dropped")
		return
	}
	if err := p.post(ctx, r); err != nil {
		log.WithError(err).Error("retry failed, result dropped")
		return
	}
	log.Info("result posted")
}

func (p *Poster) currentToken() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.token
}

func (p *Poster) post(ctx context.Context, r lobby.Result) error {
	body, err := json.Marshal(r)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.resultURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.currentToken())
	resp, err := p.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("result endpoint: %s", resp.Status)
	}
	return nil
}

// login fetches a fresh bearer token and saves it for the next start.
func (p *Poster) login(ctx context.Context) error {
	body, err := postJSON(ctx, p.http, p.loginURL, p.creds)
	if err != nil {
		return err
	}
	token := strings.Trim(strings.TrimSpace(string(body)), `"`)
	if token == "" {
		return errors.New("login: empty token")
	}
	p.mu.Lock()
	p.token = token
	p.mu.Unlock()
	if p.db != nil {
		if err := p.db.SetSetting(settingPosterToken, token); err != nil {
			p.log.WithError(err).Warn("could not persist token")
		}
	}
	return nil
}

// initResponse is the main server's answer to the initialize call
type initResponse struct {
	Secret         string `json:"secret"`
	EntrancePolicy any    `json:"entrancePolicy"`
}

// fetchInit asks the main server for the token secret and entrance policy.
func fetchInit(ctx context.Context, client *http.Client, base *url.URL, initPath string, creds credentials) (string, EntrancePolicy, error) {
	body, err := postJSON(ctx, client, base.JoinPath(initPath).String(), creds)
	if err != nil {
		return "", nil, err
	}
	var resp initResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", nil, fmt.Errorf("initialize: %w", err)
	}
	if resp.Secret == "" {
		return "", nil, errors.New("initialize: empty secret")
	}
	var policy EntrancePolicy
	if resp.EntrancePolicy != nil {
		if policy, err = ParsePolicy(resp.EntrancePolicy); err != nil {
			return "", nil, fmt.Errorf("initialize: entrance policy: %w", err)
		}
	}
	return resp.Secret, policy, nil
}

func postJSON(ctx context.Context, client *http.Client, target string, v any) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%s: %s", target, resp.Status)
	}
	return body, nil
}
