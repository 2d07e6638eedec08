// Package fixtures holds the resident demo data a new dashboard is built from.
// Every function returns fresh slices so sessions never share state.
package fixtures

import (
	"time"

	"pingly_server/models"
	"pingly_server/services"
)

// Seed builds a full dashboard seed with timestamps relative to now.
func Seed(now time.Time) services.Seed {
	return services.Seed{
		Candidates:    Candidates(),
		Collaborators: Collaborators(),
		Requests:      Requests(now),
		Schedules:     Schedules(now),
		Projects:      Projects(now),
		ProjectChats:  ProjectChats(now),
		Ideas:         Ideas(),
		Questions:     Questions(),
		Discussions:   Discussions(now),
		Leaderboard:   Leaderboard(),
		Notifications: Notifications(now),
	}
}

// Candidates is the social swipe deck.
func Candidates() []models.Candidate {
	return []models.Candidate{
		{
			ID:        "u1",
			Name:      "Emma Wilson",
			Age:       21,
			Program:   "Computer Science",
			Interests: []string{"Web Dev", "AI", "Gaming"},
			Bio:       "Love coding and looking for study partners for my ML course!",
			Image:     "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=800&q=80",
		},
		{
			ID:        "u3",
			Name:      "Alex Park",
			Age:       22,
			Program:   "Data Science",
			Interests: []string{"Python", "Statistics", "Coffee"},
			Bio:       "Coffee-fueled data enthusiast. Let's crack some algorithms together!",
			Image:     "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=800&q=80",
		},
		{
			ID:        "u4",
			Name:      "Sofia Martinez",
			Age:       20,
			Program:   "Design & Tech",
			Interests: []string{"UI/UX", "Art", "Music"},
			Bio:       "Designer who codes. Looking for creative project collaborators!",
			Image:     "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=800&q=80",
		},
		{
			ID:        "u5",
			Name:      "James Chen",
			Age:       23,
			Program:   "Software Engineering",
			Interests: []string{"React", "Node.js", "Hiking"},
			Bio:       "Full-stack dev and outdoor enthusiast. Study sessions followed by adventures!",
			Image:     "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=800&q=80",
		},
		{
			ID:        "u6",
			Name:      "Maya Patel",
			Age:       21,
			Program:   "Cybersecurity",
			Interests: []string{"Security", "Crypto", "Chess"},
			Bio:       "Ethical hacker in training. Let's solve CTF challenges together!",
			Image:     "https://images.unsplash.com/photo-1534528741775-53994a69daeb?w=800&q=80",
		},
	}
}

// Collaborators is the professional swipe deck.
func Collaborators() []models.Candidate {
	return []models.Candidate{
		{ID: "p1", Name: "Alex Chen", Program: "Computer Engineering", Interests: []string{"React", "Node.js", "WebSocket"}, Bio: "Building real-time tools for study groups."},
		{ID: "p2", Name: "Sarah Johnson", Program: "Data Science", Interests: []string{"Python", "TensorFlow"}, Bio: "Spaced repetition nerd. Need a frontend partner."},
		{ID: "p3", Name: "Mike Torres", Program: "Business Informatics", Interests: []string{"Vue.js", "Firebase", "Stripe API"}, Bio: "Shipping a tutoring marketplace this semester."},
	}
}

// Requests are the incoming connection requests.
func Requests(now time.Time) []models.Request {
	cands := Candidates()
	return []models.Request{
		{ID: "r1", Candidate: cands[0], ReceivedAt: now.Add(-10 * time.Minute)},
		{ID: "r2", Candidate: cands[1], ReceivedAt: now.Add(-30 * time.Minute)},
		{
			ID: "r3",
			Candidate: models.Candidate{
				ID:        "u2",
				Name:      "Mike Ross",
				Age:       22,
				Program:   "Law & Economics",
				Interests: []string{"Debate", "Coffee"},
				Bio:       "Always up for a coffee and a good argument.",
			},
			ReceivedAt: now.Add(-2 * time.Hour),
		},
	}
}

// Schedules is the opening activity feed.
func Schedules(now time.Time) []models.ScheduleEntry {
	return []models.ScheduleEntry{
		{
			ID:          "s1",
			Author:      models.ScheduleAuthor{ID: "u1", Name: "Emma Wilson", Avatar: "EW"},
			Activity:    "Study Session",
			Duration:    models.Duration2Hours,
			Description: "Preparing for final exams - Mathematics",
			Location:    "Library, 2nd floor",
			CreatedAt:   now.Add(-30 * time.Minute),
			ExpiresAt:   now.Add(2 * time.Hour),
		},
		{
			ID:          "s2",
			Author:      models.ScheduleAuthor{ID: "u2", Name: "Mike Ross", Avatar: "MR"},
			Activity:    "Coffee Break",
			Duration:    models.Duration1Hour,
			Description: "Quick coffee and chat about project ideas",
			Location:    "Campus Café",
			CreatedAt:   now.Add(-time.Hour),
			ExpiresAt:   now.Add(time.Hour),
		},
	}
}

// Projects are the professional projects with group chats.
func Projects(now time.Time) []models.Project {
	return []models.Project{
		{
			ID:          "project-1",
			Name:        "AI Study Assistant",
			Description: "A chatbot that turns lecture notes into practice questions.",
			Owner:       "Alex Chen",
			Members: []models.Member{
				{Name: "Alex Chen", Avatar: "AC"},
				{Name: "Sarah Kim", Avatar: "SK"},
				{Name: "Mike Torres", Avatar: "MT"},
				{Name: "Emma Davis", Avatar: "ED"},
			},
			UnreadMessages: 4,
			DatePosted:     now.Add(-48 * time.Hour),
		},
		{
			ID:          "project-2",
			Name:        "Web Dev Course",
			Description: "Peer-taught web development course for first-year students.",
			Owner:       "Sarah Kim",
			Members: []models.Member{
				{Name: "Sarah Kim", Avatar: "SK"},
				{Name: "Emma Davis", Avatar: "ED"},
			},
			UnreadMessages: 0,
			DatePosted:     now.Add(-120 * time.Hour),
		},
	}
}

// ProjectChats is the opening group chat of each project, by project id.
func ProjectChats(now time.Time) map[string][]models.Message {
	return map[string][]models.Message{
		"project-1": {
			{MatchID: "project-1", MessageID: "gm1", Sender: "Alex Chen", Body: "Hey everyone! Thanks for joining the project. Let's discuss our approach.", CreatedAt: now.Add(-2 * time.Hour)},
			{MatchID: "project-1", MessageID: "gm2", Sender: "Sarah Kim", Body: "Excited to work on this! I think we should start with the backend API.", CreatedAt: now.Add(-110 * time.Minute)},
			{MatchID: "project-1", MessageID: "gm3", Sender: "Mike Torres", Body: "Great idea! I can handle the frontend components.", CreatedAt: now.Add(-100 * time.Minute)},
			{MatchID: "project-1", MessageID: "gm4", Sender: "Emma Davis", Body: "I'll work on the database schema and design the data models.", CreatedAt: now.Add(-90 * time.Minute)},
		},
	}
}

// Ideas are the project idea pitches.
func Ideas() []models.ProjectIdea {
	return []models.ProjectIdea{
		{ID: "idea-1", Author: models.Member{Name: "Alex Chen", Avatar: "AC"}, Idea: "Building a collaborative note-taking app with real-time synchronization for study groups", Skills: []string{"React", "Node.js", "WebSocket"}, Wishes: 24},
		{ID: "idea-2", Author: models.Member{Name: "Sarah Johnson", Avatar: "SJ"}, Idea: "Creating an AI-powered flashcard generator that uses spaced repetition algorithms", Skills: []string{"Python", "TensorFlow", "React"}, Wishes: 18},
		{ID: "idea-3", Author: models.Member{Name: "Mike Torres", Avatar: "MT"}, Idea: "Developing a peer-to-peer tutoring marketplace for university students", Skills: []string{"Vue.js", "Firebase", "Stripe API"}, Wishes: 31},
	}
}

// Questions is the Q&A feed.
func Questions() []models.Question {
	return []models.Question{
		{
			ID:       "q1",
			Author:   models.Member{Name: "Emma Davis", Avatar: "ED"},
			Question: "What's the best approach to implement authentication in a MERN stack application?",
			Useful:   15,
			Replies: []models.Reply{
				{User: "John Doe", Text: "I'd recommend using JWT tokens with httpOnly cookies for security."},
				{User: "Jane Smith", Text: "Also consider implementing refresh tokens for better UX."},
			},
		},
		{
			ID:       "q2",
			Author:   models.Member{Name: "Ryan Kim", Avatar: "RK"},
			Question: "How do I optimize database queries in a large-scale application?",
			Useful:   22,
			Replies:  []models.Reply{},
		},
		{
			ID:       "q3",
			Author:   models.Member{Name: "Lisa Wang", Avatar: "LW"},
			Question: "Best practices for responsive design in 2024?",
			Useful:   8,
			Replies: []models.Reply{
				{User: "Bob Wilson", Text: "Use CSS Grid and Flexbox together for maximum flexibility."},
			},
		},
	}
}

// Discussions are the ranked discussion threads.
func Discussions(now time.Time) []models.Discussion {
	ago := func(d time.Duration) time.Time { return now.Add(-d) }
	return []models.Discussion{
		{
			Rank: 1, Title: "Best frameworks for full-stack development in 2024", Author: "Alex Rivera", Replies: 2,
			Messages: []models.DiscussionMessage{
				{User: "Alex Rivera", Text: "What are your thoughts on the best frameworks for full-stack development this year?", PostedAt: ago(2 * time.Hour)},
				{User: "Jamie Lee", Text: "I've been loving Next.js with Supabase for the backend. The DX is amazing!", PostedAt: ago(time.Hour)},
				{User: "Sam Chen", Text: "SvelteKit is also worth considering. Super fast and the learning curve is gentle.", PostedAt: ago(45 * time.Minute)},
			},
		},
		{
			Rank: 2, Title: "How to prepare for technical interviews?", Author: "Jordan Kim", Replies: 1,
			Messages: []models.DiscussionMessage{
				{User: "Jordan Kim", Text: "Any tips for acing technical interviews at top tech companies?", PostedAt: ago(4 * time.Hour)},
				{User: "Taylor Smith", Text: "Practice on LeetCode daily and do mock interviews with peers.", PostedAt: ago(3 * time.Hour)},
			},
		},
		{
			Rank: 3, Title: "Understanding async/await in JavaScript", Author: "Casey Johnson", Replies: 1,
			Messages: []models.DiscussionMessage{
				{User: "Casey Johnson", Text: "Can someone explain async/await in simple terms?", PostedAt: ago(5 * time.Hour)},
				{User: "Morgan Davis", Text: "Think of it as a way to write asynchronous code that looks synchronous!", PostedAt: ago(4 * time.Hour)},
			},
		},
		{
			Rank: 4, Title: "Best practices for Git workflow", Author: "River Thompson",
			Messages: []models.DiscussionMessage{
				{User: "River Thompson", Text: "What Git workflow do you use in your team?", PostedAt: ago(6 * time.Hour)},
			},
		},
		{
			Rank: 5, Title: "Docker vs VM: When to use what?", Author: "Quinn Martinez",
			Messages: []models.DiscussionMessage{
				{User: "Quinn Martinez", Text: "I'm confused about when to use Docker vs traditional VMs.", PostedAt: ago(8 * time.Hour)},
			},
		},
	}
}

// Leaderboard is the XP table; ranks are assigned when the board is built.
func Leaderboard() []models.LeaderboardEntry {
	return []models.LeaderboardEntry{
		{Name: "Sarah Mitchell", XP: 2450, Badge: "Master"},
		{Name: "Kevin Zhang", XP: 2180, Badge: "Expert"},
		{Name: "Maria Garcia", XP: 1950, Badge: "Pro"},
		{Name: "James Wilson", XP: 1720, Badge: "Advanced"},
		{Name: "Nina Patel", XP: 1580, Badge: "Skilled"},
		{Name: "Tom Anderson", XP: 1340, Badge: "Rising"},
	}
}

// Notifications are the opening header notifications of both modes.
func Notifications(now time.Time) []models.Notification {
	n := func(id string, mode models.Mode, kind, msg string, age time.Duration, read bool) models.Notification {
		return models.Notification{ID: id, Mode: mode, Type: kind, Message: msg, CreatedAt: now.Add(-age), Read: read}
	}
	return []models.Notification{
		n("n1", models.ModeProfessional, models.NotificationProject, "New project posted: AI Study Assistant", 5*time.Minute, false),
		n("n2", models.ModeProfessional, models.NotificationJoin, "Sarah joined your project 'Web Dev Course'", time.Hour, false),
		n("n3", models.ModeProfessional, models.NotificationWish, "Alex sent best wishes to your project", 2*time.Hour, true),
		n("n4", models.ModeProfessional, models.NotificationAnswer, "Your question received a new answer", 3*time.Hour, true),
		n("n5", models.ModeSocial, models.NotificationMatch, "You matched with Emma Wilson!", 10*time.Minute, false),
		n("n6", models.ModeSocial, models.NotificationMessage, "New message from Alex Park", 30*time.Minute, false),
		n("n7", models.ModeSocial, models.NotificationSchedule, "Mike posted a new study schedule", time.Hour, true),
	}
}
