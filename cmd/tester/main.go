package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/gookit/color"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServerAddr string        `envconfig:"SERVER_ADDR" default:"http://localhost:8000"`
	Timeout    time.Duration `envconfig:"TESTER_TIMEOUT" default:"10s"`
	Language   string        `envconfig:"TESTER_LANGUAGE" default:"auto"`
}

type mood struct {
	Sentiment      string   `json:"sentiment"`
	Confidence     float64  `json:"confidence"`
	Emotions       []string `json:"emotions"`
	Intensity      string   `json:"intensity"`
	Language       string   `json:"language"`
	Category       string   `json:"category"`
	Recommendation struct {
		Color struct {
			Hex  string `json:"hex"`
			Name string `json:"name"`
		} `json:"color"`
		Quote struct {
			Text   string `json:"text"`
			Author string `json:"author"`
		} `json:"quote"`
		Song *struct {
			Title  string `json:"title"`
			Artist string `json:"artist"`
		} `json:"song"`
	} `json:"recommendation"`
}

var samples = []string{
	"What a wonderful day, I love everything about it!",
	"The food was okay, nothing special.",
	"This is the worst service I have ever had.",
	"Great product, but I hate the packaging.",
	"Hoy estoy muy feliz con mis amigos",
	"Estoy triste y cansado",
}

// main posts sample texts, or the command line arguments, to a running server and prints colored results.
func main() {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(2)
	}

	texts := samples
	if len(os.Args) > 1 {
		texts = []string{strings.Join(os.Args[1:], " ")}
	}

	client := &http.Client{Timeout: cfg.Timeout}
	failures := 0
	for _, text := range texts {
		m, err := analyze(client, cfg, text)
		if err != nil {
			failures++
			color.Red.Printf("✗ %q: %v\n", text, err)
			continue
		}
		printMood(text, m)
	}
	if failures > 0 {
		os.Exit(1)
	}
}

func analyze(client *http.Client, cfg Config, text string) (mood, error) {
	body, err := json.Marshal(map[string]any{"text": text, "language": cfg.Language, "include_song": true})
	if err != nil {
		return mood{}, err
	}
	resp, err := client.Post(strings.TrimRight(cfg.ServerAddr, "/")+"/api/v1/analyze", "application/json", bytes.NewReader(body))
	if err != nil {
		return mood{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return mood{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return mood{}, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	var m mood
	if err := json.Unmarshal(raw, &m); err != nil {
		return mood{}, err
	}
	return m, nil
}

func printMood(text string, m mood) {
	style := color.Yellow
	switch m.Sentiment {
	case "Positive", "Very Positive":
		style = color.Green
	case "Negative", "Very Negative":
		style = color.Red
	}

	color.Bold.Printf("%q\n", text)
	style.Printf("  %s (%.2f, %s) [%s]\n", m.Sentiment, m.Confidence, m.Intensity, m.Language)
	fmt.Printf("  emotions: %s -> %s\n", strings.Join(m.Emotions, ", "), m.Category)
	color.HEX(m.Recommendation.Color.Hex).Printf("  ■ %s %s\n", m.Recommendation.Color.Name, m.Recommendation.Color.Hex)
	if song := m.Recommendation.Song; song != nil {
		color.Cyan.Printf("  ♪ %s - %s\n", song.Title, song.Artist)
	}
	color.Gray.Printf("  \"%s\" - %s\n\n", m.Recommendation.Quote.Text, m.Recommendation.Quote.Author)
}
