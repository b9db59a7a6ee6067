package models

// DemoUserProfile returns the fixed profile installed by demo mode. The
// gateway serves the same record from its GET /auth/me fixture so the two
// views of the demo session can never disagree.
func DemoUserProfile() UserProfile {
	return UserProfile{
		ID:         1,
		Email:      "demo@salim.ai",
		FullName:   "Salim Demo",
		IsVerified: true,
		Features:   []string{"chat", "banking", "stocks", "travel", "research", "documents"},
	}
}

// DemoCredentials returns the sentinel credential pair installed by demo
// mode. The sentinel stands in for both tokens at once and suppresses
// renewal.
func DemoCredentials() CredentialPair {
	return CredentialPair{Access: DemoAccessToken, Renewal: DemoAccessToken}
}
