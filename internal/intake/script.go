package intake

// Option is a selectable quick-reply choice presented with a bot message.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Reply is one bot turn: the message text plus optional quick-reply choices.
type Reply struct {
	Text    string   `json:"text"`
	Options []Option `json:"options,omitempty"`
}

// The intake script. Copy is fixed; the flow controller picks the reply
// for the session's current stage.

var welcomeReply = Reply{
	Text: "Hi there! 👋 Welcome to BrightForge. We build software for ambitious teams. What kind of project do you have in mind?",
	Options: []Option{
		{Value: "web-app", Label: "Web application"},
		{Value: "mobile-app", Label: "Mobile app"},
		{Value: "e-commerce", Label: "E-commerce store"},
		{Value: "custom-software", Label: "Custom software"},
		{Value: "ui-ux", Label: "UI/UX design"},
	},
}

// requirementReplies maps a chosen project type to its follow-up question.
var requirementReplies = map[string]Reply{
	"web-app": {
		Text: "Great choice — web apps are our bread and butter. What matters most for yours?",
		Options: []Option{
			{Value: "dashboard", Label: "Dashboards & reporting"},
			{Value: "saas", Label: "SaaS product"},
			{Value: "portal", Label: "Customer portal"},
			{Value: "other-web", Label: "Something else"},
		},
	},
	"mobile-app": {
		Text: "Nice! Which platforms should your app run on?",
		Options: []Option{
			{Value: "ios", Label: "iOS"},
			{Value: "android", Label: "Android"},
			{Value: "cross-platform", Label: "Both (cross-platform)"},
		},
	},
	"e-commerce": {
		Text: "Online stores are a specialty of ours. What does your store need?",
		Options: []Option{
			{Value: "new-store", Label: "Build a new store"},
			{Value: "migration", Label: "Migrate an existing store"},
			{Value: "integrations", Label: "Payments & integrations"},
		},
	},
	"custom-software": {
		Text: "Tell us a bit about the problem you want to solve — or pick the closest match.",
		Options: []Option{
			{Value: "automation", Label: "Workflow automation"},
			{Value: "api", Label: "APIs & integrations"},
			{Value: "data", Label: "Data & analytics"},
		},
	},
	"ui-ux": {
		Text: "Design it is! What stage is your product at?",
		Options: []Option{
			{Value: "concept", Label: "Early concept"},
			{Value: "redesign", Label: "Redesign of an existing product"},
			{Value: "design-system", Label: "Design system"},
		},
	},
}

// requirementFallback is used when the visitor typed a free-text project
// type we have no scripted follow-up for.
var requirementFallback = Reply{
	Text: "Sounds interesting! Tell us more about what you need, or pick the closest match.",
	Options: []Option{
		{Value: "new-build", Label: "Build something new"},
		{Value: "improve", Label: "Improve what we have"},
		{Value: "not-sure", Label: "Not sure yet"},
	},
}

var budgetReply = Reply{
	Text: "Got it. What budget range are you working with? A rough idea is fine.",
	Options: []Option{
		{Value: "under-10k", Label: "Under $10k"},
		{Value: "10k-25k", Label: "$10k – $25k"},
		{Value: "25k-50k", Label: "$25k – $50k"},
		{Value: "over-50k", Label: "$50k+"},
	},
}

var timelineReply = Reply{
	Text: "And when would you like to launch?",
	Options: []Option{
		{Value: "asap", Label: "As soon as possible"},
		{Value: "1-3-months", Label: "1–3 months"},
		{Value: "3-6-months", Label: "3–6 months"},
		{Value: "flexible", Label: "Flexible"},
	},
}

var contactReply = Reply{
	Text: "Almost done! How can we reach you? Drop your name, email and phone number and we'll get back to you within one business day.",
}

var completionReply = Reply{
	Text: "Thanks! 🎉 Our team has your details and will be in touch shortly. Anything else you'd like to add in the meantime?",
}

var completedFollowUpReply = Reply{
	Text: "Noted — we've added that to your enquiry. Talk soon!",
}

// WelcomeOptions returns the number of project-type choices offered at
// the greeting stage.
func WelcomeOptions() int { return len(welcomeReply.Options) }
