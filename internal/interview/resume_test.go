package interview

import "testing"

func TestLooksLikeResume(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "typical resume",
			text: "Education: MIT, BSc Computer Science. Experience: backend engineer at Acme. Skills: Go, SQL, Docker. Projects: payment gateway.",
			want: true,
		},
		{
			name: "train ticket",
			text: "PNR 4231178890. Passenger: Jane Doe. Train 12658, fare 1250.00. Booking confirmed.",
			want: false,
		},
		{
			name: "invoice",
			text: "Tax invoice. Total amount: 4,300.00. Payment confirmation and transaction id enclosed with this receipt.",
			want: false,
		},
		{
			name: "empty document",
			text: "",
			want: false,
		},
		{
			name: "resume mentioning a flight project",
			text: "Experience: built a flight reservation system at Acme. Education: state university, engineering degree. Skills: Go, Postgres. Certification: AWS.",
			want: true,
		},
		{
			name: "plain prose with one resume word",
			text: "I have some experience with computers.",
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := LooksLikeResume(tc.text); got != tc.want {
				t.Errorf("LooksLikeResume() = %v, want %v", got, tc.want)
			}
		})
	}
}
