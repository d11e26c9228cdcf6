package i18n

// Service is one entry of the services section.
type Service struct {
	Title       string
	Description string
}

// Strings are the UI labels of one language.
type Strings struct {
	NavProfile  string
	NavInsights string
	NavPanel    string
	ExpertBadge string

	HeroRole        string
	HeroDescription string

	ServicesBadge       string
	ServicesTitle       string
	ServicesTitleAccent string
	ServicesSubtitle    string
	LearnMore           string
	Services            []Service

	FounderBadge    string
	AgencyRole      string
	AgencyDesc      string
	VisitAgency     string
	TechStackTitle  string
	StackAutomation string
	StackDev        string
	CTATitle        string
	CTADesc         string
	RequestDemo     string
	Certificates    string

	ContactTitle    string
	ContactSubtitle string
	Copyright       string

	BackHome        string
	ArchiveTitle    string
	KnowledgeHub    string
	AllArticles     string
	LatestInsights  string
	CompleteArchive string
	ViewAll         string
	DemoMode        string
	EmptyStore      string
	ReadStory       string
	NoContent       string
	NoContentSub    string
	DemoBadge       string
	Share           string
	PostNotFound    string
	ReturnHome      string
	Translating     string
	SearchHint      string
	NoResults       string

	ChatGreeting    string
	ChatHeader      string
	ChatOnline      string
	ChatThinking    string
	ChatPlaceholder string
	ChatSend        string
}

var table = map[Language]Strings{
	English: {
		NavProfile:  "Profile",
		NavInsights: "Insights",
		NavPanel:    "PANEL",
		ExpertBadge: "AI Automation Expert",

		HeroRole:        "AI Automation & Vibe Coding",
		HeroDescription: "Architecting autonomous workflows. I connect n8n, AI Agents, and Apps to deliver instant results to your customers.",

		ServicesBadge:       "Expertise",
		ServicesTitle:       "Solutions that",
		ServicesTitleAccent: "Scale",
		ServicesSubtitle:    "I combine visual automation with custom code to deliver robust systems faster than traditional agencies.",
		LearnMore:           "Learn more",
		Services: []Service{
			{Title: "Vibe Coding", Description: "Rapid, AI-assisted development. I build fast, sleek web apps using Cursor, React & Tailwind."},
			{Title: "n8n Automation", Description: "Complex business logic automation. Connect Supabase, Stripe, Gmail without writing boilerplate."},
			{Title: "AI Chatbots", Description: "Custom knowledge-base chatbots trained on your data to handle support 24/7."},
			{Title: "Autonomous Agents", Description: "Self-operating AI agents that can browse the web, scrape data, and perform actions."},
		},

		FounderBadge:    "Founder",
		AgencyRole:      "AI Automation Agency",
		AgencyDesc:      "Leading the charge in autonomous business flows. We replace manual grunt work with intelligent, self-healing AI Agents and n8n workflows.",
		VisitAgency:     "Visit Agency Website",
		TechStackTitle:  "Tech Stack",
		StackAutomation: "Automation & Agents",
		StackDev:        "Vibe Coding & Data",
		CTATitle:        "Ready to automate your business?",
		CTADesc:         "I build advanced SaaS tools and Autonomous Agents. Check my portfolio or request a live demo.",
		RequestDemo:     "Request Demo",
		Certificates:    "Certificates",

		ContactTitle:    "Connect on Socials",
		ContactSubtitle: "Follow for updates on AI & Automation",
		Copyright:       "All Rights Reserved.",

		BackHome:        "Back to Home",
		ArchiveTitle:    "Blog Archive",
		KnowledgeHub:    "Knowledge Hub",
		AllArticles:     "All Articles",
		LatestInsights:  "Latest Insights",
		CompleteArchive: "Complete Archive",
		ViewAll:         "View All Articles",
		DemoMode:        "Demo Mode: Showing sample posts because the database connection is unavailable.",
		EmptyStore:      "No posts published yet. Showing sample posts for now.",
		ReadStory:       "Read Story",
		NoContent:       "No Content Yet",
		NoContentSub:    "Automated posts will appear here via n8n.",
		DemoBadge:       "Demo Content",
		Share:           "Share",
		PostNotFound:    "Post not found",
		ReturnHome:      "Return Home",
		Translating:     "Translating...",
		SearchHint:      "Search articles",
		NoResults:       "No articles match your search.",

		ChatGreeting:    "Hello! I am Shihab's AI Assistant. Ask me about his automation services or SaaS projects.",
		ChatHeader:      "Shihab's Assistant",
		ChatOnline:      "Online",
		ChatThinking:    "Thinking...",
		ChatPlaceholder: "Ask a question or enter admin command...",
		ChatSend:        "Send",
	},
	Bengali: {
		NavProfile:  "প্রোফাইল",
		NavInsights: "ব্লগ",
		NavPanel:    "প্যানেল",
		ExpertBadge: "এআই অটোমেশন এক্সপার্ট",

		HeroRole:        "এআই অটোমেশন ও ভাইব কোডিং",
		HeroDescription: "অটোনোমাস ওয়ার্কফ্লো তৈরি করি। n8n, এআই এজেন্ট এবং অ্যাপ যুক্ত করে আপনার গ্রাহকদের কাছে তাৎক্ষণিক ফলাফল পৌঁছে দিই।",

		ServicesBadge:       "দক্ষতা",
		ServicesTitle:       "সলিউশন যা",
		ServicesTitleAccent: "স্কেল করে",
		ServicesSubtitle:    "আমি ভিজ্যুয়াল অটোমেশন এবং কাস্টম কোড ব্যবহার করে সাধারণ এজেন্সির চেয়ে দ্রুত সিস্টেম তৈরি করি।",
		LearnMore:           "আরও জানুন",
		Services: []Service{
			{Title: "ভাইব কোডিং", Description: "দ্রুত, AI-সহায়তায় ডেভেলপমেন্ট। আমি Cursor, React এবং Tailwind ব্যবহার করে ফাস্ট ওয়েব অ্যাপ বানাই।"},
			{Title: "n8n অটোমেশন", Description: "জটিল বিজনেস লজিক অটোমেশন। Supabase, Stripe, Gmail কানেক্ট করুন কোনো কোড লেখা ছাড়াই।"},
			{Title: "AI চ্যাটবট", Description: "আপনার ডাটা দিয়ে তৈরি কাস্টম চ্যাটবট যা ২৪/৭ কাস্টমার সাপোর্ট দিতে সক্ষম।"},
			{Title: "স্বয়ংক্রিয় এজেন্ট", Description: "স্ব-চালিত AI এজেন্ট যা ওয়েব ব্রাউজ, ডাটা স্ক্র্যাপ এবং বিভিন্ন কাজ করতে পারে।"},
		},

		FounderBadge:    "প্রতিষ্ঠাতা",
		AgencyRole:      "এআই অটোমেশন এজেন্সি",
		AgencyDesc:      "স্বয়ংক্রিয় বিজনেস ফ্লো তৈরিতে আমরা অগ্রগামী। আমরা ম্যানুয়াল কাজকে বুদ্ধিমান AI এজেন্ট এবং n8n ওয়ার্কফ্লো দ্বারা প্রতিস্থাপন করি।",
		VisitAgency:     "এজেন্সি ভিজিট করুন",
		TechStackTitle:  "টেক স্ট্যাক",
		StackAutomation: "অটোমেশন ও এজেন্ট",
		StackDev:        "ভাইব কোডিং ও ডাটা",
		CTATitle:        "আপনার বিজনেস অটোমেট করতে প্রস্তুত?",
		CTADesc:         "আমি অ্যাডভান্সড SaaS টুল এবং অটোমেটেড এজেন্ট তৈরি করি। আমার পোর্টফোলিও দেখুন অথবা লাইভ ডেমো অনুরোধ করুন।",
		RequestDemo:     "ডেমো অনুরোধ",
		Certificates:    "সার্টিফিকেট",

		ContactTitle:    "সোশ্যাল মিডিয়ায় যুক্ত হোন",
		ContactSubtitle: "AI এবং অটোমেশন আপডেটের জন্য ফলো করুন",
		Copyright:       "সর্বস্বত্ব সংরক্ষিত।",

		BackHome:        "হোমে ফিরে যান",
		ArchiveTitle:    "ব্লগ আর্কাইভ",
		KnowledgeHub:    "নলেজ হাব",
		AllArticles:     "সব আর্টিকেল",
		LatestInsights:  "সর্বশেষ ইনসাইটস",
		CompleteArchive: "সম্পূর্ণ আর্কাইভ",
		ViewAll:         "সব আর্টিকেল দেখুন",
		DemoMode:        "ডেমো মোড: ডাটাবেস কানেকশন না থাকায় স্যাম্পল পোস্ট দেখানো হচ্ছে।",
		EmptyStore:      "এখনো কোনো পোস্ট প্রকাশিত হয়নি। আপাতত স্যাম্পল পোস্ট দেখানো হচ্ছে।",
		ReadStory:       "বিস্তারিত পড়ুন",
		NoContent:       "কোনো কন্টেন্ট নেই",
		NoContentSub:    "n8n এর মাধ্যমে অটোমেটেড পোস্ট এখানে আসবে।",
		DemoBadge:       "ডেমো কন্টেন্ট",
		Share:           "শেয়ার",
		PostNotFound:    "পোস্ট পাওয়া যায়নি",
		ReturnHome:      "হোমে ফিরে যান",
		Translating:     "অনুবাদ হচ্ছে...",
		SearchHint:      "আর্টিকেল খুঁজুন",
		NoResults:       "কোনো আর্টিকেল পাওয়া যায়নি।",

		ChatGreeting:    "হ্যালো! আমি শিহাবের এআই অ্যাসিস্ট্যান্ট। অটোমেশন সার্ভিস বা প্রজেক্ট সম্পর্কে আমাকে প্রশ্ন করতে পারেন।",
		ChatHeader:      "শিহাবের অ্যাসিস্ট্যান্ট",
		ChatOnline:      "অনলাইন",
		ChatThinking:    "ভাবছি...",
		ChatPlaceholder: "প্রশ্ন করুন অথবা অ্যাডমিন কমান্ড দিন...",
		ChatSend:        "পাঠান",
	},
}

// For returns the UI strings of a language.
func For(l Language) Strings {
	if s, ok := table[l]; ok {
		return s
	}
	return table[Primary]
}
