package raw

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("APP_NAME", " pgnframe ")
	t.Setenv("API_PORT", " 8080 ")

	root := New()
	api := root.Prefix("API_")

	tests := []struct {
		name string
		conf Conf
		key  string
		def  string
		want string
	}{
		{name: "root trimmed", conf: root, key: "APP_NAME", def: "x", want: "pgnframe"},
		{name: "prefixed", conf: api, key: "PORT", def: "x", want: "8080"},
		{name: "missing", conf: api, key: "MISSING", def: "dflt", want: "dflt"},
		{name: "nested prefix", conf: root.Prefix("AP").Prefix("I_"), key: "PORT", def: "", want: "8080"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.conf.Get(tt.key, tt.def); got != tt.want {
				t.Fatalf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestGetBool(t *testing.T) {
	c := New().Prefix("B_")
	t.Setenv("B_YES", "YES")
	t.Setenv("B_ONE", " 1 ")
	t.Setenv("B_OFF", "off")

	if !c.GetBool("YES", false) || !c.GetBool("ONE", false) {
		t.Fatalf("truthy values not accepted")
	}
	if c.GetBool("OFF", true) {
		t.Fatalf("off should be false")
	}
	if !c.GetBool("MISSING", true) {
		t.Fatalf("default not used")
	}
}

func TestGetInt(t *testing.T) {
	c := New().Prefix("N_")
	t.Setenv("N_OK", " 42 ")
	t.Setenv("N_BAD", "12x")
	t.Setenv("N_NEG", "-5")

	cases := []struct {
		key  string
		def  int
		want int
	}{
		{"OK", 0, 42},
		{"BAD", 9, 9},
		{"NEG", 3, 3},
		{"MISSING", 11, 11},
	}
	for _, tc := range cases {
		if got := c.GetInt(tc.key, tc.def); got != tc.want {
			t.Fatalf("GetInt(%q) = %d, want %d", tc.key, got, tc.want)
		}
	}
}
