package httputil

import "testing"

func TestCleanURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://rest.kegg.jp/list/organism", "https://rest.kegg.jp/list/organism"},
		{"https://rest.kegg.jp/get/hsa:10458", "https://rest.kegg.jp/get/hsa%3a10458"},
		{"https://rest.kegg.jp/find/genes/shiga toxin", "https://rest.kegg.jp/find/genes/shiga%20toxin"},
		{"http://rest.genome.jp/get/C00001#x", "http://rest.genome.jp/get/C00001%23x"},
		{"http://127.0.0.1:8080/conv/ncbi-geneid/hsa:10458", "http://127.0.0.1:8080/conv/ncbi-geneid/hsa%3a10458"},
		{"https://rest.kegg.jp", "https://rest.kegg.jp"},
		{"/get/cpd:C00001", "/get/cpd%3aC00001"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := CleanURL(tt.in); got != tt.want {
				t.Errorf("CleanURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanURLIdempotentOnCleanInput(t *testing.T) {
	u := "https://rest.kegg.jp/get/hsa%3a10458"
	if got := CleanURL(u); got != u {
		t.Errorf("CleanURL(%q) = %q", u, got)
	}
}

func TestJoinPath(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://rest.kegg.jp", []string{"list", "pathway"}, "https://rest.kegg.jp/list/pathway"},
		{"https://rest.kegg.jp/", []string{"/info/", "kegg"}, "https://rest.kegg.jp/info/kegg"},
		{"https://rest.kegg.jp", []string{"find", "compound", "C7H10O5", ""}, "https://rest.kegg.jp/find/compound/C7H10O5"},
		{"https://rest.kegg.jp", nil, "https://rest.kegg.jp"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := JoinPath(tt.base, tt.segments...); got != tt.want {
				t.Errorf("JoinPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
