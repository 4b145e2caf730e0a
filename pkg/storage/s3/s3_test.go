package s3

import "testing"

func TestParseURL(t *testing.T) {
	bucket, key, err := ParseURL("s3://raid-logs/2024/mc-night1.txt.gz")
	if err != nil {
		t.Fatal(err)
	}
	if bucket != "raid-logs" || key != "2024/mc-night1.txt.gz" {
		t.Errorf("parsed %q / %q", bucket, key)
	}

	for _, raw := range []string{
		"http://example.com/log.txt",
		"s3://bucket-only",
		"s3:///no-bucket",
		"s3://bucket/",
	} {
		if _, _, err := ParseURL(raw); err == nil {
			t.Errorf("ParseURL(%q) accepted", raw)
		}
	}
}
