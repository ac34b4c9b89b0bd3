package retailer

// Default returns the built-in retailer table.
func Default() *Table {
	return &Table{Entries: []Entry{
		{Name: "Lenovo US", Keywords: []string{"lenovo us", "lenovo usa"}},
		{Name: "Lenovo Intel", Keywords: []string{"lenovo intel"}},
		{Name: "Lenovo LAS", Keywords: []string{"lenovo las"}},
		{Name: "Lenovo Global", Keywords: []string{"lenovo global"}, Schedule: "21 Regions"},
		{Name: "Lenovo Qualcomm", Keywords: []string{"lenovo qualcomm", "snapdragon"}},
		{Name: "J Crew", Keywords: []string{"j crew", "jcrew"}},
		{Name: "Madewell", Keywords: []string{"madewell"}, Schedule: "Weekly/Biweekly"},
		{Name: "Dillards", Keywords: []string{"dillards"}, Schedule: "Weekly/Biweekly"},
		{Name: "Staples", Keywords: []string{"staples"}},
		{Name: "Unique Vintage", Keywords: []string{"unique vintage"}},
		{Name: "Ann Taylor", Keywords: []string{"ann taylor"}},
		{Name: "LOFT", Keywords: []string{"loft"}},
		{Name: "GAP US", Keywords: []string{"gap us", "gap usa"}},
		{Name: "Old Navy", Keywords: []string{"old navy"}},
		{Name: "Banana Republic", Keywords: []string{"banana republic", "br factory"}},
		{Name: "Athleta", Keywords: []string{"athleta us"}},
		{Name: "Athleta Canada", Keywords: []string{"athleta canada"}},
		{Name: "Gap Factory", Keywords: []string{"gap factory"}},
		{Name: "Gap Canada", Keywords: []string{"gap can", "gap canada"}, Schedule: "Monthly (Includes ON, GAP, BR, Athleta)"},
		{Name: "Joe Fresh", Keywords: []string{"joe fresh"}},
		{Name: "Simply Be", Keywords: []string{"simplybe", "simply be"}},
		{Name: "JD Williams", Keywords: []string{"jd williams"}},
		{Name: "Jacamo", Keywords: []string{"jacamo"}},
		{Name: "Lululemon", Keywords: []string{"lululemon", "lulu"}, Schedule: "Biweekly/Monthly"},
		{Name: "Foot Locker", Keywords: []string{"foot locker"}},
		{Name: "Sole Supplier", Keywords: []string{"sole supplier"}},
		{Name: "Janie and Jack", Keywords: []string{"janie and jack"}},
		{Name: "NAPA Online", Keywords: []string{"napa", "genuine parts"}},
		{Name: "Pet Supermarket", Keywords: []string{"pet supermarket"}},
		{Name: "EVO", Keywords: []string{"evo"}},
		{Name: "Brooks Brothers", Keywords: []string{"brooks brothers"}},
		{Name: "Revzilla", Keywords: []string{"revzilla"}},
		{Name: "Croma", Keywords: []string{"croma"}},
		{Name: "Halloween Costumes", Keywords: []string{"halloween costumes"}},
		{Name: "Ambrose Wilson", Keywords: []string{"ambrose wilson"}},
		{Name: "Fashion World", Keywords: []string{"fashion world"}},
		{Name: "Pacsun", Keywords: []string{"pacsun"}, Schedule: "Biweekly/Monthly"},
		{Name: "Quiksilver", Keywords: []string{"quick silver", "quiksilver"}},
		{Name: "Billabong", Keywords: []string{"billabong"}},
		{Name: "Reebok", Keywords: []string{"reebok"}},
		{Name: "Vince Camuto", Keywords: []string{"vince camuto"}},
		{Name: "David Jones", Keywords: []string{"david jones"}},
		{Name: "SnapAV", Keywords: []string{"snapav"}},
		{Name: "DSG", Keywords: []string{"dsg", "dick's sporting goods"}},
		{Name: "Rainbow Shops", Keywords: []string{"rainbow", "rainbowshops"}},
		{Name: "Alex & Ani", Keywords: []string{"alex & ani", "alex and ani"}},
		{Name: "Roots", Keywords: []string{"roots"}},
	}}
}
