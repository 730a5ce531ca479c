package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"store": map[string]any{
			"bucketUrl": "",
			"postgres": map[string]any{
				"sslMode": "disable",
				"master": map[string]any{
					"userName": "user",
				},
			},
		},
		"pubsub": map[string]any{
			"topicId": "",
		},
		"secretKey": map[string]any{
			"access": "",
		},
		"share": map[string]any{
			"orderWhatsappNumber": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "STORE_BUCKETURL", want: "store.bucketUrl"},
		{envKey: "STORE_POSTGRES_SSLMODE", want: "store.postgres.sslMode"},
		{envKey: "STORE_POSTGRES_MASTER_USERNAME", want: "store.postgres.master.userName"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "SHARE_ORDERWHATSAPPNUMBER", want: "share.orderWhatsappNumber"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
