package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	store := Default()

	tests := []struct {
		name        string
		prompt      string
		wantKeyword string
		wantFound   bool
	}{
		{name: "lowercase diwali", prompt: "diwali wishes", wantKeyword: "diwali", wantFound: true},
		{name: "uppercase diwali", prompt: "DIWALI wishes", wantKeyword: "diwali", wantFound: true},
		{name: "keyword inside word", prompt: "prediwalis", wantKeyword: "diwali", wantFound: true},
		{name: "new year", prompt: "Happy new year wishes", wantKeyword: "new year", wantFound: true},
		{name: "birthday mixed case", prompt: "a BirthDay card", wantKeyword: "birthday", wantFound: true},
		{name: "first declared wins", prompt: "birthday during diwali and new year", wantKeyword: "diwali", wantFound: true},
		{name: "new year beats birthday", prompt: "birthday on new year", wantKeyword: "new year", wantFound: true},
		{name: "no match", prompt: "thanks for your order", wantFound: false},
		{name: "empty prompt", prompt: "", wantFound: false},
		{name: "split keyword does not match", prompt: "new  year", wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := store.Lookup(tt.prompt)
			assert.Equal(t, tt.wantFound, ok)
			if tt.wantFound {
				assert.Equal(t, tt.wantKeyword, got.Keyword)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	store := Default()

	tmpl, ok := store.Lookup("Happy new year wishes")
	assert.True(t, ok)
	assert.Equal(t,
		"Dear Asha, Happy New Year! Wishing you success, health, and happiness in the year ahead.",
		tmpl.Format("Asha"))

	tmpl, ok = store.Lookup("DIWALI")
	assert.True(t, ok)
	assert.Equal(t,
		"Hello Ravi, Diwali greetings! We wish you a prosperous and joyful holiday season.",
		tmpl.Format("Ravi"))
}

func TestFallback(t *testing.T) {
	assert.Equal(t,
		"Dear Customer, thank you for reaching out. Your order has shipped",
		Fallback("Customer", "Your order has shipped"))
}

func TestNewLowercasesKeywords(t *testing.T) {
	store := New(Template{Keyword: "Eid", Message: "Eid Mubarak, {name}!"})

	tmpl, ok := store.Lookup("eid wishes")
	assert.True(t, ok)
	assert.Equal(t, "Eid Mubarak, Sam!", tmpl.Format("Sam"))
}

func TestImagesAndKeywords(t *testing.T) {
	store := Default()

	assert.Equal(t, []string{"diwali", "new year", "birthday"}, store.Keywords())
	assert.Equal(t, []string{"diwali.jpg", "newyear.jpg", "birthday.jpg", DefaultImage}, store.Images())
}
