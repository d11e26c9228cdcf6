package content

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"portfolio/database"
)

//go:embed demo_posts.yaml
var demoPostsYAML []byte

type demoPost struct {
	ID       int64  `yaml:"id"`
	Title    string `yaml:"title"`
	TitleAlt string `yaml:"title_bn"`
	Body     string `yaml:"excerpt"`
	BodyAlt  string `yaml:"excerpt_bn"`
	Category string `yaml:"category"`
	Date     string `yaml:"date"`
	ImageURL string `yaml:"image_url"`
}

var demoPosts = mustParseDemoPosts(demoPostsYAML)

func mustParseDemoPosts(data []byte) []database.Post {
	var raw []demoPost
	if err := yaml.Unmarshal(data, &raw); err != nil {
		panic(fmt.Sprintf("content: bad demo dataset: %v", err))
	}
	if len(raw) == 0 {
		panic("content: demo dataset is empty")
	}

	posts := make([]database.Post, 0, len(raw))
	for _, d := range raw {
		posts = append(posts, database.Post{
			ID:            d.ID,
			Title:         d.Title,
			TitleAlt:      d.TitleAlt,
			Body:          d.Body,
			BodyAlt:       d.BodyAlt,
			Category:      d.Category,
			PublishedDate: d.Date,
			ImageURL:      d.ImageURL,
		})
	}
	return posts
}

// DemoPosts returns a copy of the bundled sample posts, newest first.
func DemoPosts() []database.Post {
	out := make([]database.Post, len(demoPosts))
	for i := range demoPosts {
		out[len(demoPosts)-1-i] = demoPosts[i]
	}
	return out
}

// DemoPost returns the sample post with the given id.
func DemoPost(id int64) (database.Post, bool) {
	for _, p := range demoPosts {
		if p.ID == id {
			return p, true
		}
	}
	return database.Post{}, false
}
