package roster

import "testing"

func TestParsePlayersDeduplicatesByWBFID(t *testing.T) {
	players := ParsePlayers("Jane DOE (123) captain Jane DOE (123) coach", ModeTeams)
	if len(players) != 1 {
		t.Fatalf("expected 1 player, got %d: %+v", len(players), players)
	}
	p := players[0]
	if p.WBFID != "123" || p.FullName != "Jane DOE" || p.Surname != "DOE" {
		t.Fatalf("unexpected player %+v", p)
	}
	if p.Role != RoleCaptain {
		t.Fatalf("expected first role to win, got %q", p.Role)
	}
}

func TestParsePlayersRoles(t *testing.T) {
	players := ParsePlayers("Anna BIANCHI (1) NPC Marco ROSSI (2) Coach Luca VERDI (3)", ModeTeams)
	if len(players) != 3 {
		t.Fatalf("expected 3 players, got %d", len(players))
	}
	want := []Role{RoleNPC, RoleCoach, RoleNone}
	for i, r := range want {
		if players[i].Role != r {
			t.Fatalf("player %d: expected role %q, got %q", i, r, players[i].Role)
		}
	}
	if players[2].FullName != "Luca VERDI" {
		t.Fatalf("expected role token excluded from next name, got %q", players[2].FullName)
	}
}

func TestParsePlayersPairsIgnoreRoles(t *testing.T) {
	players := ParsePlayers("John SMITH (111) captain Jane DOE (222)", ModePairs)
	if len(players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(players))
	}
	if players[0].Role != RoleNone || players[1].Role != RoleNone {
		t.Fatalf("expected no roles in pairs mode, got %+v", players)
	}
	if players[1].FullName != "captain Jane DOE" {
		t.Fatalf("expected role word to stay part of the name, got %q", players[1].FullName)
	}
}

func TestParsePlayersAccentedNames(t *testing.T) {
	players := ParsePlayers("José ÁLVAREZ (10) Zoë O'NEILL-SMITH (11)", ModePairs)
	if len(players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(players))
	}
	if players[0].Surname != "ÁLVAREZ" || players[1].Surname != "O'NEILL-SMITH" {
		t.Fatalf("unexpected surnames %q %q", players[0].Surname, players[1].Surname)
	}
}

func TestParsePlayersNoMatches(t *testing.T) {
	if players := ParsePlayers("TBD", ModeTeams); len(players) != 0 {
		t.Fatalf("expected no players, got %+v", players)
	}
}

func TestSurname(t *testing.T) {
	cases := map[string]string{
		"John SMITH":       "SMITH",
		"VAN DER BERG Jan": "VAN",
		"Jane Doe":         "DOE",
		"A Smith":          "SMITH",
		"Maria de la Cruz": "CRUZ",
		"Single":           "SINGLE",
		"":                 "",
		"Hans STRAß":       "STRASS",
	}
	for in, want := range cases {
		if got := Surname(in); got != want {
			t.Fatalf("Surname(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParsePlayersNoBreakSpaceInName(t *testing.T) {
	players := ParsePlayers("Jane\u00a0DOE (1) Bob ROE (2)", ModeTeams)
	if len(players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(players))
	}
	if players[0].FullName != "Jane DOE" || players[0].Surname != "DOE" {
		t.Fatalf("unexpected first player %+v", players[0])
	}
}
