package templates

import (
	"time"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"portfolio/constants"
)

const (
	agencyName      = "AutoMateIQ"
	agencyURL       = "https://automateiq.xyz/"
	demoRequestURL  = "mailto:shihabno.18@gmail.com?subject=Portfolio%20Request"
	certificatesURL = "https://drive.google.com/drive/folders/1JNeuN5ZTU0Ai5mhU0CG7tIziampylqEf"
)

var (
	automationStack = []string{"n8n", "Google Gemini", "OpenAI", "Apify", "ElevenLabs", "MCP Server"}
	devStack        = []string{"Vibe Code", "React", "Next.js", "Supabase", "Pinecone"}
)

type socialLink struct {
	label string
	url   string
}

var socialLinks = []socialLink{
	{label: "LinkedIn", url: "https://www.linkedin.com/in/md-sahadat-hossen-shihab/"},
	{label: "Facebook", url: "https://www.facebook.com/MDSAHADATHOSSENSHIHAB"},
	{label: "X", url: "https://x.com/SHOSSENSHIHAB"},
}

func externalLink(href, text string) g.Node {
	return A(Href(href), Target("_blank"), Rel("noopener noreferrer"), g.Text(text))
}

func ServicesSection(props LayoutProps) g.Node {
	s := props.strings()

	items := make([]g.Node, 0, len(s.Services))
	for _, svc := range s.Services {
		items = append(items, Div(Class("card"),
			Div(Class("card-body"),
				H3(g.Text(svc.Title)),
				P(Class("meta"), g.Text(svc.Description)),
				Small(g.Text(s.LearnMore)),
			),
		))
	}

	return Section(ID("services"), Class("section"),
		Span(Class("badge"), g.Text(s.ServicesBadge)),
		H2(g.Text(s.ServicesTitle+" "), Span(Class("accent"), g.Text(s.ServicesTitleAccent))),
		P(Class("meta"), g.Text(s.ServicesSubtitle)),
		Div(Class("grid"), g.Group(items)),
	)
}

func stackChips(title string, skills []string) g.Node {
	chips := make([]g.Node, 0, len(skills))
	for _, skill := range skills {
		chips = append(chips, Span(Class("badge"), g.Text(skill)))
	}
	return Div(H4(g.Text(title)), Div(Class("chips"), g.Group(chips)))
}

func ExperienceSection(props LayoutProps) g.Node {
	s := props.strings()

	return Section(ID("experience"), Class("section"),
		Div(Class("grid"),
			Div(Class("card"),
				Div(Class("card-body"),
					Span(Class("badge"), g.Text(s.FounderBadge)),
					H3(g.Text(agencyName)),
					P(Class("meta"), g.Text(s.AgencyRole)),
					P(g.Text(s.AgencyDesc)),
					externalLink(agencyURL, s.VisitAgency),
				),
			),
			Div(Class("card"),
				Div(Class("card-body"),
					H3(g.Text(s.TechStackTitle)),
					stackChips(s.StackAutomation, automationStack),
					stackChips(s.StackDev, devStack),
				),
			),
		),
		Div(Class("banner cta"),
			H3(g.Text(s.CTATitle)),
			P(Class("meta"), g.Text(s.CTADesc)),
			Div(Class("row"),
				A(Class("button"), Href(demoRequestURL), g.Text(s.RequestDemo)),
				externalLink(certificatesURL, s.Certificates),
			),
		),
	)
}

func ContactSection(props LayoutProps) g.Node {
	s := props.strings()

	links := make([]g.Node, 0, len(socialLinks))
	for _, l := range socialLinks {
		links = append(links, externalLink(l.url, l.label))
	}

	return Section(ID("contact"), Class("section contact"),
		H2(g.Text(s.ContactTitle)),
		P(Class("meta"), g.Text(s.ContactSubtitle)),
		Div(Class("row socials"), g.Group(links)),
		P(Class("meta"),
			g.Textf("© %d %s. %s", time.Now().Year(), constants.OWNER_NAME, s.Copyright),
		),
	)
}
