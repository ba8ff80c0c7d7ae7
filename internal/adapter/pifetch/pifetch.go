// Package pifetch pulls survey captures off the Raspberry Pi rig over SSH.
package pifetch

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"path"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"

	"roamscope/internal/codec"
	"roamscope/internal/config"
	"roamscope/internal/service"
)

// Fetcher connects to the survey Pi and imports any capture files
// found in its capture directory.
type Fetcher struct {
	cfg     config.PiFetchConfig
	surveys *service.SurveyService
	timeout time.Duration
}

// New creates a new Pi capture fetcher
func New(cfg config.PiFetchConfig, timeout time.Duration, surveys *service.SurveyService) *Fetcher {
	return &Fetcher{
		cfg:     cfg,
		surveys: surveys,
		timeout: timeout,
	}
}

// Fetch connects to the Pi, lists capture files in the remote
// directory, and imports each one. Returns the floors imported.
func (f *Fetcher) Fetch(ctx context.Context) ([]string, error) {
	client, err := f.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	files, err := f.listCaptures(client)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		log.Printf("No captures found on %s:%s", f.cfg.Host, f.cfg.RemoteDir)
		return nil, nil
	}

	var imported []string
	for _, file := range files {
		data, err := f.readFile(client, file)
		if err != nil {
			log.Printf("Failed to read %s from pi: %v", file, err)
			continue
		}

		floor := codec.FloorFromFilename(file)
		survey, err := f.surveys.ImportAirodump(ctx, floor, bytes.NewReader(data))
		if err != nil {
			log.Printf("Failed to import %s from pi: %v", file, err)
			continue
		}

		log.Printf("Fetched %s from pi: floor %s, %d APs", path.Base(file), floor, len(survey.Observations))
		imported = append(imported, floor)
	}

	return imported, nil
}

// connect establishes the SSH connection using key-based auth
func (f *Fetcher) connect(ctx context.Context) (*ssh.Client, error) {
	keyData, err := os.ReadFile(f.cfg.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read key: %w", err)
	}

	signer, err := ssh.ParsePrivateKey(keyData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	sshConfig := &ssh.ClientConfig{
		User: f.cfg.User,
		Auth: []ssh.AuthMethod{
			ssh.PublicKeys(signer),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         f.timeout,
	}

	addr := fmt.Sprintf("%s:%d", f.cfg.Host, f.cfg.Port)

	dialer := &net.Dialer{
		Timeout: f.timeout,
	}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial: %w", err)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, sshConfig)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to establish SSH connection: %w", err)
	}

	return ssh.NewClient(sshConn, chans, reqs), nil
}

// listCaptures lists capture CSVs in the remote directory
func (f *Fetcher) listCaptures(client *ssh.Client) ([]string, error) {
	out, err := f.runCommand(client, fmt.Sprintf("ls %s/survey_*.csv 2>/dev/null", f.cfg.RemoteDir))
	if err != nil {
		return nil, fmt.Errorf("failed to list captures: %w", err)
	}

	return parseFileList(out), nil
}

// parseFileList splits ls output into clean paths
func parseFileList(out string) []string {
	var files []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}
	return files
}

// readFile fetches a remote file's contents
func (f *Fetcher) readFile(client *ssh.Client, file string) ([]byte, error) {
	out, err := f.runCommand(client, fmt.Sprintf("cat %q", file))
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// runCommand executes a command over SSH and returns the output
func (f *Fetcher) runCommand(client *ssh.Client, cmd string) (string, error) {
	session, err := client.NewSession()
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	defer session.Close()

	done := make(chan error, 1)
	var output []byte

	go func() {
		var err error
		output, err = session.CombinedOutput(cmd)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			if _, ok := err.(*ssh.ExitError); ok {
				// Non-zero exit still produces usable output, e.g. an
				// empty glob from ls.
				return string(output), nil
			}
			return "", fmt.Errorf("command failed: %w", err)
		}
		return string(output), nil
	case <-time.After(f.timeout):
		session.Signal(ssh.SIGKILL)
		return "", fmt.Errorf("command timeout")
	}
}
