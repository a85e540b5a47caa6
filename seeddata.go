package activitydb

// Static initial datasets. The seeding step treats these as opaque
// input; they are only inserted when a collection starts empty.

// DefaultActivities returns the initial activity listings, in the order
// they are seeded.
func DefaultActivities() []Document {
	return []Document{
		activity("Chess Club",
			"Learn strategies and compete in chess tournaments",
			"Mondays and Fridays, 3:15 PM - 4:45 PM",
			[]string{"Monday", "Friday"}, "15:15", "16:45", 12,
			[]string{"michael@mergington.edu", "daniel@mergington.edu"}),
		activity("Programming Class",
			"Learn programming fundamentals and build software projects",
			"Tuesdays and Thursdays, 7:00 AM - 8:00 AM",
			[]string{"Tuesday", "Thursday"}, "07:00", "08:00", 20,
			[]string{"emma@mergington.edu", "sophia@mergington.edu"}),
		activity("Morning Fitness",
			"Early morning physical training and exercises",
			"Mondays, Wednesdays, Fridays, 6:30 AM - 7:45 AM",
			[]string{"Monday", "Wednesday", "Friday"}, "06:30", "07:45", 30,
			[]string{"john@mergington.edu", "olivia@mergington.edu"}),
		activity("Soccer Team",
			"Join the school soccer team and compete in matches",
			"Tuesdays and Thursdays, 3:30 PM - 5:30 PM",
			[]string{"Tuesday", "Thursday"}, "15:30", "17:30", 22,
			[]string{"liam@mergington.edu", "noah@mergington.edu"}),
		activity("Basketball Team",
			"Practice and compete in basketball tournaments",
			"Wednesdays and Fridays, 3:15 PM - 5:00 PM",
			[]string{"Wednesday", "Friday"}, "15:15", "17:00", 15,
			[]string{"ava@mergington.edu", "mia@mergington.edu"}),
		activity("Art Club",
			"Explore various art techniques and create masterpieces",
			"Thursdays, 3:15 PM - 5:00 PM",
			[]string{"Thursday"}, "15:15", "17:00", 15,
			[]string{"amelia@mergington.edu", "harper@mergington.edu"}),
		activity("Drama Club",
			"Act, direct, and produce plays and performances",
			"Mondays and Wednesdays, 3:30 PM - 5:30 PM",
			[]string{"Monday", "Wednesday"}, "15:30", "17:30", 20,
			[]string{"ella@mergington.edu", "scarlett@mergington.edu"}),
		activity("Math Club",
			"Solve challenging problems and prepare for math competitions",
			"Tuesdays, 7:15 AM - 8:00 AM",
			[]string{"Tuesday"}, "07:15", "08:00", 10,
			[]string{"james@mergington.edu", "benjamin@mergington.edu"}),
		activity("Debate Team",
			"Develop public speaking and argumentation skills",
			"Fridays, 3:30 PM - 5:30 PM",
			[]string{"Friday"}, "15:30", "17:30", 12,
			[]string{"charlotte@mergington.edu", "amelia@mergington.edu"}),
		activity("Weekend Robotics Workshop",
			"Build and program robots in our state-of-the-art workshop",
			"Saturdays, 10:00 AM - 2:00 PM",
			[]string{"Saturday"}, "10:00", "14:00", 15,
			[]string{"ethan@mergington.edu", "oliver@mergington.edu"}),
		activity("Science Olympiad",
			"Weekend science competition preparation for regional and state events",
			"Saturdays, 1:00 PM - 4:00 PM",
			[]string{"Saturday"}, "13:00", "16:00", 18,
			[]string{"isabella@mergington.edu", "lucas@mergington.edu"}),
		activity("Sunday Chess Tournament",
			"Weekly tournament for serious chess players with rankings",
			"Sundays, 2:00 PM - 5:00 PM",
			[]string{"Sunday"}, "14:00", "17:00", 16,
			[]string{"william@mergington.edu", "jacob@mergington.edu"}),
		activity("Manga Maniacs",
			"Explore the fantastic stories of the most interesting characters from Japanese Manga (graphic novels).",
			"Tuesdays, 7:00 PM - 8:30 PM",
			[]string{"Tuesday"}, "19:00", "20:30", 15,
			[]string{}),
	}
}

// DefaultAccounts returns the initial teacher and admin accounts.
func DefaultAccounts() []SeedAccount {
	return []SeedAccount{
		{Username: "mrodriguez", DisplayName: "Ms. Rodriguez", Password: "art123", Role: "teacher"},
		{Username: "mchen", DisplayName: "Mr. Chen", Password: "chess456", Role: "teacher"},
		{Username: "principal", DisplayName: "Principal Martinez", Password: "admin789", Role: "admin"},
	}
}

func activity(name, description, schedule string, days []string, start, end string, maxParticipants int, participants []string) Document {
	return Document{
		Key: name,
		Fields: map[string]any{
			"description": description,
			"schedule":    schedule,
			FieldScheduleDetails: map[string]any{
				FieldDays:      days,
				FieldStartTime: start,
				FieldEndTime:   end,
			},
			"max_participants": maxParticipants,
			FieldParticipants:  participants,
		},
	}
}
