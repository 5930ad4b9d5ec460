package classify

// defaultRules is the production rule table. Order matters: standard scoring
// iterates in table order and keeps the first best score, and the top-tier
// scan resolves equal priorities by table order.
func defaultRules() []Rule {
	return []Rule{
		// 0000番台 国税申告書類
		{
			Label:    "0000_納付税額一覧表",
			Priority: 160,
			TopConditions: []AndCondition{
				anyOf("納付税額一覧表"),
				allOf("まとめ納付", "納付税額"),
			},
			ExactKeywords: []string{"納付税額一覧表"},
			ExcludeKeywords: []string{
				"受信通知", "納付区分番号通知", "メール詳細", "添付資料",
				"申告書", "イメージ添付", "元帳", "総勘定", "仕訳", "決算",
				"内国法人", "確定申告", "青色申告", "法人税申告",
				"事業年度分", "税額控除", "都道府県民税", "市民税", "消費税",
				"事業税", "特別法人事業税", "地方法人税", "市長", "市役所", "県税事務所", "都税事務所",
			},
			FilenameKeywords: []string{"納付税額一覧表", "まとめ納付"},
		},
		{
			Label:    "0001_法人税及び地方法人税申告書",
			Priority: 220,
			TopConditions: []AndCondition{
				allOf("01_内国法人", "確定申告"),
				anyOf("内国法人の確定申告(青色)"),
				allOf("事業年度分の法人税申告書", "差引確定法人税額"),
				allOf("内国法人の確定申告(青色)", "法人税額"),
				allOf("控除しきれなかった金額", "課税留保金額"),
				allOf("中間申告分の法人税額", "中間申告分の地方法人税額"),
			},
			ExactKeywords: []string{
				"法人税及び地方法人税申告書", "内国法人の確定申告", "内国法人の確定申告(青色)",
				"法人税申告書別表一", "申告書第一表",
			},
			PartialKeywords:  []string{"法人税申告", "内国法人", "確定申告", "青色申告", "事業年度分"},
			ExcludeKeywords:  []string{"メール詳細", "受信通知", "納付区分番号通知", "添付資料", "イメージ添付"},
			FilenameKeywords: []string{"内国法人", "確定申告", "青色"},
		},
		{
			Label:    "0002_添付資料_法人税",
			Priority: 200,
			TopConditions: []AndCondition{
				anyOf("法人税 添付資料"),
				anyOf("添付資料 法人税"),
				anyOf("イメージ添付書類(法人税申告)"),
				anyOf("イメージ添付書類 法人税"),
				anyOf("添付書類 法人税"),
				allOf("添付資料", "法人税申告", "イメージ添付"),
				allOf("添付書類", "法人税", "申告書"),
			},
			ExactKeywords: []string{
				"法人税 添付資料", "添付資料 法人税", "イメージ添付書類(法人税申告)",
				"イメージ添付書類 法人税", "添付書類 法人税",
			},
			PartialKeywords:  []string{"添付資料", "法人税 資料", "イメージ添付", "添付書類"},
			ExcludeKeywords:  []string{"消費税申告", "法人消費税", "消費税", "受信通知", "納付区分番号通知"},
			FilenameKeywords: []string{"法人税申告", "法人税", "内国法人"},
		},
		{
			Label:    "0003_受信通知",
			Priority: 130,
			TopConditions: []AndCondition{
				allOf("メール詳細", "種目 法人税及び地方法人税申告書"),
				allOf("受付番号", "税目 法人税", "受付日時"),
				allOf("提出先", "税務署", "法人税及び地方法人税申告書"),
				allOf("送信されたデータを受け付けました", "法人税"),
			},
			ExactKeywords:    []string{"法人税 受信通知", "受信通知 法人税"},
			PartialKeywords:  []string{"受信通知", "国税電子申告", "メール詳細"},
			ExcludeKeywords:  []string{"消費税申告書", "納付区分番号通知"},
			FilenameKeywords: []string{"受信通知", "法人税"},
		},
		{
			Label:    "0004_納付情報",
			Priority: 130,
			TopConditions: []AndCondition{
				allOf("メール詳細（納付区分番号通知）", "法人税及地方法人税"),
				allOf("納付区分番号通知", "税目 法人税及地方法人税"),
				allOf("納付先", "税務署", "法人税及地方法人税"),
				allOf("納付内容を確認し", "法人税"),
			},
			ExactKeywords:    []string{"法人税 納付情報", "納付情報 法人税", "納付区分番号通知"},
			PartialKeywords:  []string{"納付情報", "納付書", "国税 納付"},
			ExcludeKeywords:  []string{"消費税及地方消費税", "受信通知"},
			FilenameKeywords: []string{"納付情報", "法人税"},
		},

		// 1000番台 都道府県税関連
		{
			Label:    "1001_都道府県_法人都道府県民税・事業税・特別法人事業税",
			Priority: 200,
			TopConditions: []AndCondition{
				allOf("法人都道府県民税・事業税・特別法人事業税申告書", "年400万円以下"),
				allOf("県税事務所", "法人事業税", "特別法人事業税"),
				allOf("都税事務所", "道府県民税", "事業税"),
				allOf("法人事業税申告書", "都道府県民税"),
			},
			ExactKeywords: []string{
				"法人都道府県民税・事業税・特別法人事業税申告書", "法人事業税申告書", "都道府県民税申告書",
			},
			PartialKeywords: []string{
				"都道府県民税", "法人事業税", "特別法人事業税", "道府県民税", "事業税",
				"県税事務所", "都税事務所", "年400万円以下", "年月日から年月日までの",
			},
			ExcludeKeywords: []string{
				"市町村", "市民税", "市役所", "町役場", "村役場", "受信通知", "納付情報",
				"納付税額一覧表", "納税一覧", "税額一覧表", "納付一覧表",
				"年間税額", "申告納付額", "差引納付額", "見込納付額",
				"事業税等小計", "道府県税小計", "地方税小計", "各税目",
				"法人税等の納付税額", "各税目納付税額", "税額合計",
				"法人市民税", "消費税", "地方消費税", "まとめ納付", "納付税額", "まとめ", "納付",
			},
			FilenameKeywords: []string{"県税事務所", "都税事務所"},
		},
		{
			Label:    "1003_受信通知",
			Priority: 130,
			TopConditions: []AndCondition{
				allOf("申告受付完了通知", "都道府県民税", "事業税"),
				allOf("県税事務所", "受信通知", "法人事業税"),
				allOf("都税事務所", "受付完了通知", "特別法人事業税"),
			},
			ExactKeywords:    []string{"都道府県 受信通知"},
			PartialKeywords:  []string{"受信通知", "地方税電子申告"},
			ExcludeKeywords:  []string{"市町村", "市民税", "国税電子申告"},
			FilenameKeywords: []string{"受信通知", "都道府県"},
		},
		{
			Label:    "1004_納付情報",
			Priority: 185,
			TopConditions: []AndCondition{
				allOf("地方税共同機構", "税目:法人二税・特別税"),
				allOf("地方税共同機構", "法人都道府県民税・事業税・特別法人事業税"),
				allOf("納付情報発行結果", "法人都道府県民税"),
				allOf("納付情報発行結果", "法人事業税"),
				allOf("納付情報発行結果", "特別法人事業税"),
				allOf("地方税共同機構", "都道府県民税・事業税"),
				allOf("ペイジー納付情報", "都道府県民税"),
			},
			ExactKeywords: []string{
				"都道府県 納付情報", "納付情報発行結果", "地方税共同機構",
				"税目:法人二税・特別税", "法人都道府県民税・事業税・特別法人事業税",
			},
			PartialKeywords: []string{
				"納付情報", "地方税 納付", "法人二税", "特別税", "都道府県民税",
				"法人事業税", "特別法人事業税",
			},
			ExcludeKeywords:  []string{"市役所", "町役場", "村役場", "法人市民税", "法人住民税", "国税"},
			FilenameKeywords: []string{"納付情報", "都道府県", "地方税共同機構"},
		},

		// 2000番台 市町村税関連
		{
			Label:    "2001_市町村_法人市民税",
			Priority: 210,
			TopConditions: []AndCondition{
				allOf("法人市民税", "申告書", "市役所"),
				allOf("市長", "法人市民税"),
				allOf("法人市民税申告書", "市役所", "均等割"),
				allOf("市町村民税", "法人税割", "申告納付税額"),
				allOf("法人市民税", "課税標準総額", "市長"),
			},
			ExactKeywords:   []string{"法人市民税申告書", "市民税申告書"},
			PartialKeywords: []string{"法人市民税", "市町村民税", "市役所", "町役場", "村役場"},
			ExcludeKeywords: []string{
				"都道府県", "事業税", "県税事務所", "都税事務所", "受信通知", "納付情報",
				"内国法人", "確定申告(青色)", "事業年度分", "税額控除",
				"地方税共同機構", "納付情報発行結果", "納付区分番号通知",
			},
			FilenameKeywords: []string{"市役所", "市民税"},
		},
		{
			Label:    "2003_受信通知",
			Priority: 140,
			TopConditions: []AndCondition{
				allOf("申告受付完了通知", "法人市町村民税"),
				allOf("申告受付完了通知", "法人市民税"),
				allOf("法人市民税", "市役所", "申告受付完了通知"),
				allOf("市長", "法人市民税", "受付完了通知"),
				allOf("蒲郡市役所", "申告受付完了通知"),
				allOf("福岡市", "法人市民税", "受付番号"),
			},
			ExactKeywords:    []string{"市町村 受信通知", "申告受付完了通知"},
			PartialKeywords:  []string{"受信通知", "地方税電子申告", "市役所"},
			ExcludeKeywords:  []string{"県税事務所", "都税事務所", "法人事業税", "国税電子申告"},
			FilenameKeywords: []string{"受信通知", "市町村"},
		},
		{
			Label:    "2004_納付情報",
			Priority: 195,
			TopConditions: []AndCondition{
				allOf("地方税共同機構", "税目:法人住民税"),
				allOf("地方税共同機構", "法人市町村民税"),
				allOf("納付情報発行結果", "法人住民税"),
				allOf("納付情報発行結果", "法人市民税"),
				allOf("納付情報発行結果", "法人市町村民税"),
				anyOf("地方税共同機構"),
				allOf("市役所", "納付情報"),
				allOf("法人市民税", "納付情報"),
				allOf("法人住民税", "納付書"),
				allOf("ペイジー", "市町村"),
			},
			ExactKeywords: []string{
				"市町村 納付情報", "法人住民税 納付情報", "地方税共同機構",
				"納付情報発行結果", "法人市民税 納付情報",
			},
			PartialKeywords: []string{
				"納付情報", "地方税 納付", "法人住民税", "法人市民税",
				"納付書", "ペイジー", "市町村税",
			},
			ExcludeKeywords:  []string{"県税事務所", "都税事務所", "法人二税・特別税", "国税", "申告書"},
			FilenameKeywords: []string{"納付情報", "市町村", "地方税共同機構"},
		},

		// 3000番台 消費税関連
		{
			Label:    "3001_消費税及び地方消費税申告書",
			Priority: 135,
			TopConditions: []AndCondition{
				allOf("課税期間分の消費税及び", "基準期間の"),
				allOf("消費税及び地方消費税申告(一般・法人)", "課税標準額"),
				allOf("現金主義会計の適用", "消費税申告"),
				allOf("課税標準額", "消費税及び地方消費税の合計税額"),
			},
			ExactKeywords: []string{
				"消費税申告書", "消費税及び地方消費税申告書",
				"消費税及び地方消費税申告(一般・法人)", "消費税申告(一般・法人)",
				"課税期間分の消費税及び", "基準期間の", "現金主義会計の適用",
			},
			PartialKeywords:  []string{"消費税申告", "地方消費税申告", "消費税申告書", "課税期間分", "基準期間"},
			ExcludeKeywords:  []string{"添付資料", "イメージ添付", "資料", "受信通知", "納付区分番号通知"},
			FilenameKeywords: []string{"消費税及び地方消費税申告", "消費税申告", "地方消費税申告"},
		},
		{
			Label:    "3002_添付資料_消費税",
			Priority: 200,
			TopConditions: []AndCondition{
				anyOf("イメージ添付書類(法人消費税申告)"),
				allOf("添付資料", "消費税申告", "イメージ添付"),
				allOf("添付書類", "法人消費税申告"),
				allOf("イメージ添付書類(法人消費税申告)", "添付資料"),
			},
			ExactKeywords: []string{
				"消費税 添付資料", "添付資料 消費税", "イメージ添付書類(法人消費税申告)",
				"イメージ添付書類 消費税", "添付書類 消費税",
			},
			PartialKeywords: []string{"添付資料", "消費税 資料", "イメージ添付", "添付書類"},
			ExcludeKeywords: []string{
				"消費税及び地方消費税申告", "消費税申告書", "申告(一般・法人)",
				"法人税申告", "内国法人", "確定申告", "受信通知", "納付区分番号通知",
			},
			FilenameKeywords: []string{"イメージ添付書類", "添付書類", "法人消費税"},
		},
		{
			Label:    "3003_受信通知",
			Priority: 130,
			TopConditions: []AndCondition{
				allOf("メール詳細", "種目 消費税申告書"),
				allOf("受付番号", "消費税及び地方消費税", "受付日時"),
				allOf("提出先", "税務署", "消費税申告書"),
				allOf("送信されたデータを受け付けました", "消費税"),
			},
			ExactKeywords:    []string{"消費税 受信通知", "受信通知 消費税"},
			PartialKeywords:  []string{"受信通知", "国税電子申告", "メール詳細"},
			ExcludeKeywords:  []string{"法人税及び地方法人税申告書", "納付区分番号通知"},
			FilenameKeywords: []string{"受信通知", "消費税"},
		},
		{
			Label:    "3004_納付情報",
			Priority: 130,
			TopConditions: []AndCondition{
				allOf("メール詳細（納付区分番号通知）", "消費税及地方消費税"),
				allOf("納付区分番号通知", "税目 消費税及地方消費税"),
				allOf("納付先", "税務署", "消費税及地方消費税"),
				allOf("納付内容を確認し", "消費税"),
			},
			ExactKeywords:    []string{"消費税 納付情報", "納付情報 消費税", "消費税 納付区分番号通知"},
			PartialKeywords:  []string{"納付情報", "納付書", "納付区分番号通知"},
			ExcludeKeywords:  []string{"法人税及地方法人税", "受信通知"},
			FilenameKeywords: []string{"納付情報", "消費税"},
		},

		// 5000番台 会計書類
		{
			Label:    "5001_決算書",
			Priority: 170,
			TopConditions: []AndCondition{
				allOf("販売費及び一般管理費", "貸借対照表", "損益計算書"),
			},
			ExactKeywords:    []string{"決算報告書"},
			PartialKeywords:  []string{"決算報告"},
			FilenameKeywords: []string{"決算書", "決算報告書"},
		},
		{
			Label:    "5002_総勘定元帳",
			Priority: 180,
			TopConditions: []AndCondition{
				anyOf("総勘定元帳"),
			},
			ExactKeywords:    []string{"総勘定元帳"},
			PartialKeywords:  []string{"総勘定", "元帳"},
			ExcludeKeywords:  []string{"補助元帳", "補助", "内国法人", "確定申告", "01_内国法人"},
			FilenameKeywords: []string{"総勘定元帳", "総勘定"},
			Meta:             RuleMeta{NoSplit: true},
		},
		{
			Label:    "5003_補助元帳",
			Priority: 170,
			TopConditions: []AndCondition{
				anyOf("補助元帳"),
			},
			ExactKeywords:    []string{"補助元帳"},
			PartialKeywords:  []string{"補助", "元帳"},
			ExcludeKeywords:  []string{"総勘定"},
			FilenameKeywords: []string{"補助元帳", "補助"},
			Meta:             RuleMeta{NoSplit: true},
		},
		{
			Label:    "5004_残高試算表",
			Priority: 135,
			TopConditions: []AndCondition{
				anyOf("残高試算表"),
				anyOf("試算表"),
			},
			ExactKeywords:    []string{"残高試算表", "試算表"},
			PartialKeywords:  []string{"残高試算", "試算"},
			FilenameKeywords: []string{"残高試算表", "試算表"},
		},
		{
			Label:    "5005_仕訳帳",
			Priority: 135,
			TopConditions: []AndCondition{
				anyOf("仕訳帳"),
			},
			ExactKeywords:    []string{"仕訳帳"},
			PartialKeywords:  []string{"仕訳"},
			FilenameKeywords: []string{"仕訳帳", "仕訳"},
			Meta:             RuleMeta{NoSplit: true},
		},

		// 6000番台 固定資産関連
		{
			Label:    "6001_固定資産台帳",
			Priority: 135,
			TopConditions: []AndCondition{
				anyOf("固定資産台帳"),
			},
			ExactKeywords:    []string{"固定資産台帳"},
			PartialKeywords:  []string{"固定資産", "資産台帳"},
			FilenameKeywords: []string{"固定資産台帳"},
			Meta:             RuleMeta{NoSplit: true},
		},
		{
			Label:    "6002_一括償却資産明細表",
			Priority: 170,
			TopConditions: []AndCondition{
				anyOf("一括償却資産明細表"),
			},
			ExactKeywords:    []string{"一括償却資産明細表"},
			PartialKeywords:  []string{"一括償却", "償却資産明細"},
			ExcludeKeywords:  []string{"少額"},
			FilenameKeywords: []string{"一括償却資産明細表", "一括償却"},
		},
		{
			Label:    "6003_少額減価償却資産明細表",
			Priority: 170,
			TopConditions: []AndCondition{
				anyOf("少額減価償却資産明細表"),
			},
			ExactKeywords:    []string{"少額減価償却資産明細表"},
			PartialKeywords:  []string{"少額減価償却", "少額償却"},
			ExcludeKeywords:  []string{"一括"},
			FilenameKeywords: []string{"少額減価償却資産明細表", "少額"},
		},

		// 7000番台 税区分関連
		{
			Label:    "7001_勘定科目別税区分集計表",
			Priority: 140,
			TopConditions: []AndCondition{
				anyOf("勘定科目別税区分集計表"),
			},
			ExactKeywords:    []string{"勘定科目別税区分集計表"},
			PartialKeywords:  []string{"勘定科目別税区分", "科目別税区分"},
			ExcludeKeywords:  []string{"イメージ添付書類", "添付資料", "法人消費税申告"},
			FilenameKeywords: []string{"勘定科目別税区分集計表"},
		},
		{
			Label:    "7002_税区分集計表",
			Priority: 170,
			TopConditions: []AndCondition{
				anyOf("税区分集計表"),
			},
			ExactKeywords:    []string{"税区分集計表"},
			PartialKeywords:  []string{"税区分集計", "区分集計"},
			ExcludeKeywords:  []string{"勘定科目別", "科目別"},
			FilenameKeywords: []string{"税区分集計表"},
		},
	}
}
