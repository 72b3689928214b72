// File path: internal/kb/content.go
package kb

func defaultHookFormulas() []HookFormula {
	return []HookFormula{
		{Name: "1. Shocking Question", Template: "What if I told you [shocking fact]?", Example: "What if I told you the most beautiful cities were built without architects?", Power: 9},
		{Name: "2. Contradictory Statement", Template: "Everyone thinks X, but actually Y", Example: "Everyone thinks modern buildings are progress. But they're actually making us miserable.", Power: 9},
		{Name: "3. Time-Bound Problem", Template: "In the next [time], [dire prediction]", Example: "In the next 10 years, half of our historic city centers could be demolished.", Power: 8},
		{Name: "4. Personal Stakes", Template: "I spent [time/money] to discover [secret]", Example: "I spent 3 years visiting 50 cities to discover why some places feel magical.", Power: 10},
		{Name: "5. Authority Challenge", Template: "[Famous person/institution] is wrong about [topic]", Example: "Le Corbusier was wrong about everything. Here's the proof.", Power: 9},
		{Name: "6. Before/After Tease", Template: "This went from [bad state] to [amazing state]", Example: "This parking lot became the most beloved neighborhood in Europe.", Power: 8},
		{Name: "7. Secret Reveal", Template: "[Group] doesn't want you to know [secret]", Example: "Developers don't want you to know this about beautiful buildings.", Power: 7},
		{Name: "8. Countdown Pattern", Template: "Only [number] things separate [current] from [desired]", Example: "Only 3 decisions separate an ugly suburb from a beautiful town.", Power: 7},
		{Name: "9. Negative Hook", Template: "Stop doing [common mistake]. Do this instead.", Example: "Stop building parking lots. Build this instead.", Power: 8},
		{Name: "10. The Unthinkable", Template: "[Person/Place] did the unthinkable and [result]", Example: "King Charles did the unthinkable and built his own town.", Power: 9},
		{Name: "11. Mystery Question", Template: "Why does [surprising phenomenon]?", Example: "Why do millions of tourists visit this tiny village every year?", Power: 8},
		{Name: "12. Comparison Hook", Template: "This [thing] vs this [thing]. One attracts millions.", Example: "These two neighborhoods look similar. One attracts millions.", Power: 8},
		{Name: "13. Bold Prediction", Template: "This will be the [superlative] of [topic]", Example: "This will be the most important video about cities you'll ever watch.", Power: 7},
		{Name: "14. Hidden History", Template: "The [adjective] story behind [famous thing]", Example: "The incredible story behind Europe's most beautiful new neighborhood.", Power: 9},
		{Name: "15. Problem Statement", Template: "[Widespread problem]. But there's a solution.", Example: "Our cities are becoming unlivable. But there's a solution.", Power: 8},
		{Name: "16. The Reveal", Template: "I finally discovered why [mystery]", Example: "I finally discovered why old buildings feel better than new ones.", Power: 8},
		{Name: "17. Contrarian Take", Template: "[Popular opinion] is destroying [thing we value]", Example: "Our obsession with efficiency is destroying our cities.", Power: 9},
		{Name: "18. Promise Hook", Template: "By the end of this video, you'll know [specific knowledge]", Example: "By the end of this video, you'll know exactly why beautiful places work.", Power: 7},
	}
}

func defaultStoryStructures() []StoryStructure {
	return []StoryStructure{
		{Name: "Discovery Arc", Beats: []string{"Hook", "Mystery", "Investigation", "Expert Insights", "Revelation", "Application", "Implications"}},
		{Name: "Problem-Solution", Beats: []string{"Problem", "Consequences", "Promise", "Solution", "Evidence", "Action", "Vision"}},
		{Name: "Myth-Busting", Beats: []string{"Myth", "Logic", "Evidence", "Truth", "Examples", "Implications", "Reframe"}},
		{Name: "Case Study", Beats: []string{"Example", "Context", "Transformation", "Factors", "Principles", "Application", "Next Steps"}},
	}
}

func defaultRecords() []Record {
	return []Record{
		{
			ID:     "style-guide",
			Name:   "Channel Style Guide",
			Origin: "Distilled from the channel's published scripts",
			Active: true,
			Principles: []string{
				"DO: personal stories, rhetorical questions, strong opinions, specific examples, curiosity builders",
				"DON'T: \"Let's dive in\", \"Furthermore\", \"In conclusion\", generic statements",
				"Name real places (Poundbury, Cayala) instead of speaking in abstractions",
				"Sound like one person talking to one person",
			},
		},
		{
			ID:     "retention",
			Name:   "Retention Principles",
			Origin: "Channel analytics review",
			Active: true,
			Principles: []string{
				"Deliver a pattern interrupt every 30-45 seconds",
				"Open curiosity gaps early, close them late",
				"The first 10 seconds decide the video; front-load the strongest claim",
				"Payoff promised in the hook must arrive before the midpoint",
			},
		},
		{
			ID:     "packaging",
			Name:   "Titles & Thumbnails",
			Origin: "Packaging experiments log",
			Active: true,
			Principles: []string{
				"Titles under 60 characters, specific over clever",
				"Thumbnail text 3-5 words, never repeating the title",
				"Before/after and beautiful-versus-ugly contrasts earn clicks",
			},
		},
		{
			ID:     "playbook",
			Name:   "Viral Playbook",
			Origin: "Full channel playbook",
			Active: true,
			FullText: "THE VIRAL PLAYBOOK\n\n" +
				"1. Packaging before production: topic, title, and thumbnail are one decision, " +
				"made before a word of script is written.\n" +
				"2. The hook is a contract: promise something specific and visual, then spend the " +
				"video honoring it. A broken contract costs more retention than a boring topic.\n" +
				"3. Structure beats inspiration: pick a beat list and fill it. Discovery Arc for " +
				"journeys, Problem-Solution for arguments, Myth-Busting for contrarian takes, " +
				"Case Study for places.\n" +
				"4. Every 30-45 seconds, change something: location, tone, a question, a bold cut. " +
				"Mark these as pattern interrupts in the script.\n" +
				"5. Specificity is the channel's voice: a named street in a named town beats " +
				"\"many European cities\" every time.\n" +
				"6. End on implications, not summaries. Never say \"in conclusion\".",
		},
	}
}
