package reminder

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMealLabel(t *testing.T) {
	cases := []struct {
		title, name, want string
	}{
		{"Taco Night", "leftovers", "Taco Night"},
		{"", "leftovers", "leftovers"},
		{"  ", "  ", "Meal planned"},
		{"", "", "Meal planned"},
	}
	for _, tc := range cases {
		if got := MealLabel(tc.title, tc.name); got != tc.want {
			t.Errorf("MealLabel(%q, %q) = %q, want %q", tc.title, tc.name, got, tc.want)
		}
	}
}

func TestBuildWeeklyMessage(t *testing.T) {
	t.Run("Full", func(t *testing.T) {
		meals := []MealEntry{
			{Date: "2024-02-14", Label: "Taco Night", EstimatedCost: 12.5},
			{Date: "2024-02-15", Label: "Meal planned", EstimatedCost: 0},
		}
		items := []ShoppingEntry{
			{Name: "Flour", Total: 1.5},
			{Name: "Saffron", Total: 0},
		}
		got := BuildWeeklyMessage("Alex", meals, items)
		want := "Hi Alex, this is your MadFood reminder for the week.\n\n" +
			"Upcoming meals:\n" +
			"- 2024-02-14: Taco Night ($12.50)\n" +
			"- 2024-02-15: Meal planned (cost TBD)\n" +
			"\nIngredients to shop:\n" +
			"- Flour ($1.50)\n" +
			"- Saffron (cost TBD)"
		if got != want {
			t.Errorf("message mismatch:\ngot:\n%s\nwant:\n%s", got, want)
		}
	})

	t.Run("EmptyWeek", func(t *testing.T) {
		got := BuildWeeklyMessage("Sam", nil, nil)
		if !strings.Contains(got, "- No meals planned yet for this week.") {
			t.Errorf("missing empty-meals line:\n%s", got)
		}
		if !strings.HasSuffix(got, "- No pending ingredients to shop.") {
			t.Errorf("missing empty-shopping line:\n%s", got)
		}
	})

	t.Run("ShoppingCappedAtTwenty", func(t *testing.T) {
		var items []ShoppingEntry
		for i := 0; i < 30; i++ {
			items = append(items, ShoppingEntry{Name: fmt.Sprintf("item-%d", i), Total: 1})
		}
		got := BuildWeeklyMessage("Sam", nil, items)
		if n := strings.Count(got, "- item-"); n != 20 {
			t.Errorf("listed %d shopping lines, want 20", n)
		}
		if strings.Contains(got, "item-20") {
			t.Error("item past the cap should not appear")
		}
	})
}

func TestTwilioSender(t *testing.T) {
	var gotPath, gotAuthSID, gotTo, gotFrom, gotBody string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuthSID, _, _ = r.BasicAuth()
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm: %v", err)
		}
		gotTo = r.PostForm.Get("To")
		gotFrom = r.PostForm.Get("From")
		gotBody = r.PostForm.Get("Body")
		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	sender := NewTwilioSender("AC123", "secret", "+15550100")
	sender.baseURL = ts.URL

	if err := sender.Send(context.Background(), "+15550123", "hello"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotPath != "/2010-04-01/Accounts/AC123/Messages.json" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuthSID != "AC123" {
		t.Errorf("basic auth user = %q", gotAuthSID)
	}
	if gotTo != "+15550123" || gotFrom != "+15550100" || gotBody != "hello" {
		t.Errorf("form = to %q from %q body %q", gotTo, gotFrom, gotBody)
	}
	if sender.Channel() != "sms" {
		t.Errorf("Channel = %q", sender.Channel())
	}
}

func TestTwilioSenderAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code": 21211}`, http.StatusBadRequest)
	}))
	defer ts.Close()

	sender := NewTwilioSender("AC123", "secret", "+15550100")
	sender.baseURL = ts.URL

	if err := sender.Send(context.Background(), "bad-number", "hello"); err == nil {
		t.Error("expected error for non-2xx response")
	}
}
