package store

// SampleRecords seeds the in-memory repository so a fresh dashboard has
// something to show.
func SampleRecords() []Record {
	return []Record{
		{ID: "1", Name: "Ada Lovelace", Email: "ada@example.com", Gender: "female", Location: "London", Age: "36", CreatedAt: "2025-07-01T09:15:00.000Z"},
		{ID: "2", Name: "Alan Turing", Email: "alan@example.com", Gender: "male", Location: "Manchester", Age: "41", CreatedAt: "2025-07-02T14:30:00.000Z"},
		{ID: "3", Name: "Grace Hopper", Email: "grace@example.com", Avatar: "https://avatars.githubusercontent.com/u/1?v=4", Gender: "female", Location: "New York", Age: "85", CreatedAt: "2025-07-03T20:05:00.000Z"},
		{ID: "4", Name: "Edsger Dijkstra", Email: "edsger@example.com", Gender: "male", Location: "Austin", Age: "72"},
		{ID: "5", Name: "Barbara Liskov", Location: "Boston", CreatedAt: "2025-07-05T11:45:00.000Z"},
	}
}
