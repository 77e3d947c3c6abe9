package scenario

// Authored scenario content. This is the canonical single version: claim
// AC-2025-00124 resolves Claimant At-Fault with fraud risk 0.62, payout
// 42200 and overall confidence 0.87.

// DefaultClaimID is the fallback scenario. Lookups that miss resolve here.
const DefaultClaimID = "AC-2025-00124"

func authoredScenarios() []*Scenario {
	return []*Scenario{
		scenario00124(),
		scenario00123(),
		scenario00122(),
		scenario00121(),
		scenario00120(),
	}
}

func scenario00124() *Scenario {
	return &Scenario{
		ClaimID: "AC-2025-00124",
		FNOL: FNOLSummary{
			Location:     "MG Road intersection, Mumbai",
			IncidentTime: "15 Oct 2025, 22:50 (Police report)",
			FNOLTime:     "23:40 (FNOL filing)",
			Description:  `Single-vehicle collision with barrier. Claimant stated "rear impact" but evidence suggests front-left collision.`,
			Weather:      "Clear, dry conditions",
			Injuries:     "None reported",
		},
		Stages: []StageRecord{
			{
				Kind:    StageDocumentIngest,
				Summary: "Parsed 4 files (FNOL form, 6 photos, police_report.pdf, repair_estimate.pdf). Extracted 14 key facts.",
				DetailedReasoning: `Successfully ingested all uploaded documents:

- FNOL Form (PDF): Parsed claimant details, incident time (23:40), location, initial damage description
- Police Report (PDF): Extracted incident narrative, officer observations, witness statement, timestamp (22:50)
- Repair Estimate (PDF): Identified damage items, labor costs, parts costs
- Claimant Statement (TXT): Extracted subjective account of incident
- 6 Vehicle Photos (JPG): Metadata extracted, ready for vision analysis

Key facts include the incident-time discrepancy (22:50 police vs 23:40 FNOL filing), the MG Road location, the claimant's "rear impact" account against a front-left damage description, vehicle 2018 Honda City, policy POL-2025-789 and claimant Rahul Sharma.`,
				Timestamp:  "00:00:02",
				Confidence: confidence(0.98),
			},
			{
				Kind:    StageVision,
				Summary: "Detected: front-left bumper damage, left headlight shattered, hood dent. Severity: 6/10. Estimated repair cost: ₹34,500 (range: ₹30k–₹39k).",
				DetailedReasoning: `Damage assessment: severe front-left bumper deformation with structural compromise, left headlight assembly shattered (replacement required), 15cm hood dent with possible frame damage, minor left fender scratches. No airbag deployment detected.

Impact analysis: primary impact zone front-left at roughly a 45-degree angle, medium-high force (estimated 25-35 km/h), damage pattern consistent with collision against a stationary or slower-moving object. No secondary impact zones.

Cost breakdown: bumper replacement ₹12,000, headlight assembly ₹8,500, hood repair ₹9,000, paint and labor ₹5,000 — total ₹34,500 (±₹4,500). All images clear, well-lit, multiple angles.`,
				Timestamp:  "00:00:05",
				Confidence: confidence(0.89),
				Data: map[string]any{
					"damageZones":   []string{"front-left bumper", "left headlight", "hood"},
					"severity":      6,
					"estimatedCost": 34500,
				},
			},
			{
				Kind:    StageDocumentAnalysis,
				Summary: "Police report indicates collision at 22:50 on 15 Oct 2025; witness: 'car hit from front-left.' Claimant statement: 'rear impact' — contradiction flagged.",
				DetailedReasoning: `Police report: incident at 22:50 on 15 Oct 2025, officer on scene 23:05, witness (Mr. Anand Kumar) saw the Honda City collide with the barrier from the front-left side, officer noted visible front-left damage, no other vehicle involved, clear dry conditions.

Claimant statement: FNOL filed at 23:40 (50 minutes after the incident), claims "I was hit from behind while stopped at the signal", no mention of barrier or front damage.

Repair estimate: all damage items are front-left components, no rear damage noted, consistent with police and photo evidence.

CONTRADICTION DETECTED: the claimant's account conflicts with the officer's observation, the witness testimony, the visual damage evidence and the repair estimate scope. High priority review required.`,
				Timestamp:  "00:00:08",
				Confidence: confidence(0.92),
			},
			{
				Kind:    StageLiability,
				Summary: "Evidence supports front-left impact. Claimant description contradicts police report. Recommended liability: Claimant at-fault. Confidence 0.80.",
				DetailedReasoning: `Evidence analysis: police report documents a single-vehicle collision with a barrier; witness testimony confirms the front-left impact; photo evidence matches a barrier collision; no evidence of another vehicle. Only the claimant statement is inconsistent with the rest of the record.

Determining factors: single-vehicle accident, no third-party involvement, claimant account unsupported, officer noted no debris or marks indicating rear impact.

Conclusion: claimant 100% at-fault (collision with stationary barrier), third party 0%. Recommend approving under comprehensive coverage, flagging for SIU review due to the statement inconsistency, requesting dashcam footage if available, and confirming fraud indicators clear before payout.`,
				Timestamp:  "00:00:11",
				Confidence: confidence(0.80),
			},
			{
				Kind:    StageFraud,
				Summary: "Risk score: 0.62. Reasons: Photo timestamp mismatch (23:08 vs FNOL at 23:40); pattern match to case #18293 (0.83); previous repair activity on same part.",
				DetailedReasoning: `Risk indicators:

1. Timestamp anomaly (high): photo metadata 23:08, FNOL filing 23:40, police incident 22:50 — photos taken 18 minutes before the FNOL filing. Why the reporting delay?
2. Pattern matching (medium-high): 83% similarity to case #18293 — same vehicle model, same damage zone, different claimant name but same phone area code, 8 months apart.
3. Repair history (medium): previous claim on the left headlight (case #17845, 2 years ago), same repair shop in the estimate, potential claimant/facility relationship.
4. Statement inconsistency (high): contradicts all evidence; possible staged or exaggerated claim.
5. Geolocation check (low): photo location matches the police report; incident location consistent.

Overall fraud risk score: 0.62 (medium-high). Request dashcam footage, phone records and a statement clarification interview; SIU review recommended; verify the repair shop relationship. Proceed with caution but do not deny automatically.`,
				Timestamp:  "00:00:14",
				Confidence: confidence(0.87),
				Data: map[string]any{
					"riskScore":  0.62,
					"indicators": []string{"timestamp_mismatch", "pattern_match", "statement_conflict"},
				},
			},
			{
				Kind:    StagePayout,
				Summary: "Recommended payout: ₹42,200 (repair ₹34,500 + towing/admin fees). Confidence 0.87.",
				DetailedReasoning: `Repair costs: front-left bumper replacement ₹12,000, headlight assembly ₹8,500, hood repair ₹9,000, paint and labor ₹5,000 — subtotal ₹34,500.

Additional costs: towing ₹2,500, two days of vehicle storage ₹1,200, administrative fees ₹4,000 — subtotal ₹7,700.

Total payout ₹42,200. Policy: comprehensive, ₹5,000 deductible, ₹5,00,000 coverage limit, single-vehicle coverage included. Net payout to claimant ₹37,200 after deductible.

Conditions: subject to fraud review clearance, claimant statement clarification, repairs at an approved facility, post-repair inspection. Direct bank transfer, 3-5 business days after approval.`,
				Timestamp:  "00:00:16",
				Confidence: confidence(0.87),
				Data: map[string]any{
					"repairCost":      34500,
					"additionalCosts": 7700,
					"totalPayout":     42200,
					"deductible":      5000,
					"netPayout":       37200,
				},
			},
		},
		Liability: Determination{
			Assessment:  LiabilityClaimantAtFault,
			Description: "Single-vehicle collision. Evidence contradicts claimant statement.",
		},
		Payout: Payout{
			Amount:    42200,
			Breakdown: "₹34,500 (repairs) + ₹7,700 (towing, admin)",
		},
		Confidence: 0.87,
		Transcript: []Message{
			{Stage: StageVision, Text: "Detected front-left damage & headlight break. Severity 6/10. Est. cost: ₹34,500.", Timestamp: "00:00:03"},
			{Stage: StageDocumentAnalysis, Text: "Police report timestamp verified. Witness confirms front-left impact.", Timestamp: "00:00:05"},
			{Stage: StageLiability, Text: "Claimant statement conflicts with vision + police evidence. Contradiction flagged.", Timestamp: "00:00:07"},
			{Stage: StageVision, Text: "Impact angle re-verified. Front-left confirmed.", Timestamp: "00:00:09"},
			{Stage: StageFraud, Text: "Timestamp mismatch found. Similar to case #18293. Risk score 0.62.", Timestamp: "00:00:11"},
			{Stage: StagePayout, Text: "Recommended payout ₹42,200. Confidence 0.87.", Timestamp: "00:00:13"},
		},
		Evidence: []Evidence{
			{Source: "Photo #3", Description: "Left bumper deformation — match score 0.91", MatchScore: 0.91},
			{Source: "Police report pg1", Description: "Incident time 22:50; consistent with metadata", MatchScore: 0.95},
			{Source: "Claimant statement", Description: "Rear impact claim contradicts visual evidence", MatchScore: 0.15},
			{Source: "Witness testimony", Description: "Front-left collision confirmed", MatchScore: 0.88},
			{Source: "Repair estimate", Description: "All damage items front-left zone", MatchScore: 0.93},
		},
		Historical: []HistoricalCase{
			{CaseID: "#18293", Description: "Similar impact angle"},
			{CaseID: "#18110", Description: "Similar damage pattern"},
			{CaseID: "#17320", Description: "Same car model, similar repair bill"},
		},
		Verification: []VerificationItem{
			{Task: "Confirm claimant phone recording"},
			{Task: "Request dashcam footage"},
			{Task: "Reconfirm timestamp with service center"},
		},
	}
}

func scenario00123() *Scenario {
	return &Scenario{
		ClaimID: "AC-2025-00123",
		FNOL: FNOLSummary{
			Location:     "Nehru Place, New Delhi",
			IncidentTime: "14 Oct 2025, 14:15",
			FNOLTime:     "14:20 (FNOL filing)",
			Description:  "Rear-end collision at traffic signal. Other driver admitted fault at scene. Police report confirms third-party liability.",
			Weather:      "Sunny, clear visibility",
			Injuries:     "Minor whiplash (claimant)",
		},
		Stages: standardStages(stageTexts{
			ingest:   "Parsed 5 files (FNOL form, police report, medical note, repair estimate, 4 photos). Extracted 11 key facts.",
			vision:   "Detected: rear bumper crush, boot lid deformation. Severity: 5/10. Estimated repair cost: ₹72,000.",
			analysis: "Police report and third-party admission align with claimant account. No contradictions found.",
			liability: "Third-party driver admitted fault at scene; police report and witness statements confirm. " +
				"Recommended liability: Third-party at-fault.",
			fraud:  "Risk score: 0.08. No indicators. Timeline, photos and statements fully consistent.",
			payout: "Recommended payout: ₹85,000 (repairs ₹72,000 + medical ₹8,000 + rental/admin ₹5,000). Confidence 0.95.",
		}),
		Liability: Determination{
			Assessment:  LiabilityThirdPartyAtFault,
			Description: "Third-party driver admitted fault. Police report and witness statements confirm.",
		},
		Payout: Payout{
			Amount:    85000,
			Breakdown: "₹72,000 (repairs) + ₹8,000 (medical) + ₹5,000 (rental, admin)",
		},
		Confidence: 0.95,
		Transcript: []Message{
			{Stage: StageVision, Text: "Rear impact confirmed. Damage consistent with low-speed rear-end collision.", Timestamp: "00:00:03"},
			{Stage: StageDocumentAnalysis, Text: "Third-party admission on record. No statement conflicts.", Timestamp: "00:00:06"},
			{Stage: StageFraud, Text: "No fraud indicators. Risk score 0.08.", Timestamp: "00:00:10"},
			{Stage: StagePayout, Text: "Recommended payout ₹85,000. Confidence 0.95.", Timestamp: "00:00:13"},
		},
	}
}

func scenario00122() *Scenario {
	return &Scenario{
		ClaimID: "AC-2025-00122",
		FNOL: FNOLSummary{
			Location:     "Brigade Road, Bangalore",
			IncidentTime: "16 Oct 2025, 08:10",
			FNOLTime:     "08:15 (FNOL filing)",
			Description:  "Side-swipe incident during lane change. Both drivers claim the other merged unsafely. No clear evidence of primary fault.",
			Weather:      "Light rain, reduced visibility",
			Injuries:     "None reported",
		},
		Stages: standardStages(stageTexts{
			ingest:   "Parsed 4 files (FNOL form, both driver statements, 5 photos). Extracted 9 key facts.",
			vision:   "Detected: right-side panel scrape, mirror damage. Severity: 3/10. Estimated repair cost: ₹28,000.",
			analysis: "Driver statements directly conflict; no dashcam or CCTV available. Rain noted in both accounts.",
			liability: "Insufficient evidence to determine primary fault; both statements plausible. " +
				"Recommended liability: Shared fault, 50-50 split.",
			fraud:  "Risk score: 0.21. Mild concern: both statements drafted with similar phrasing. No hard indicators.",
			payout: "Recommended payout: ₹31,500 (50% repair share ₹28,000 + admin ₹3,500). Confidence 0.68.",
		}),
		Liability: Determination{
			Assessment:  LiabilitySharedFault,
			Description: "Insufficient evidence to determine primary fault. Recommend 50-50 liability split.",
		},
		Payout: Payout{
			Amount:    31500,
			Breakdown: "₹28,000 (repairs - 50% share) + ₹3,500 (admin)",
		},
		Confidence: 0.68,
		Transcript: []Message{
			{Stage: StageVision, Text: "Side-swipe scrape pattern, shallow angle. Severity 3/10.", Timestamp: "00:00:03"},
			{Stage: StageLiability, Text: "Conflicting statements, no independent evidence. Proposing 50-50 split.", Timestamp: "00:00:08"},
			{Stage: StagePayout, Text: "Recommended payout ₹31,500 at 50% share. Confidence 0.68.", Timestamp: "00:00:13"},
		},
	}
}

func scenario00121() *Scenario {
	return &Scenario{
		ClaimID: "AC-2025-00121",
		FNOL: FNOLSummary{
			Location:     "Indiranagar parking lot, Bangalore",
			IncidentTime: "10 Oct 2025, 16:30",
			FNOLTime:     "16:45 (FNOL filing)",
			Description:  "Minor rear bumper damage while reversing in parking lot. Claimant struck pole. Self-reported, no dispute.",
			Weather:      "Clear conditions",
			Injuries:     "None",
		},
		Stages: standardStages(stageTexts{
			ingest:    "Parsed 3 files (FNOL form, repair estimate, 3 photos). Extracted 6 key facts.",
			vision:    "Detected: rear bumper scuff and crack. Severity: 2/10. Estimated repair cost: ₹10,500.",
			analysis:  "Self-reported incident; statement, photos and estimate fully consistent.",
			liability: "Self-reported parking lot incident, no third-party involvement. Recommended liability: Claimant at-fault.",
			fraud:     "Risk score: 0.03. No indicators. Claim history clean.",
			payout:    "Recommended payout: ₹12,000 (bumper repair ₹10,500 + admin ₹1,500). Confidence 0.99.",
		}),
		Liability: Determination{
			Assessment:  LiabilityClaimantAtFault,
			Description: "Self-reported parking lot incident. No third-party involvement.",
		},
		Payout: Payout{
			Amount:    12000,
			Breakdown: "₹10,500 (bumper repair) + ₹1,500 (admin)",
		},
		Confidence: 0.99,
		Transcript: []Message{
			{Stage: StageVision, Text: "Low-severity bumper damage. Est. cost ₹10,500.", Timestamp: "00:00:03"},
			{Stage: StagePayout, Text: "Recommended payout ₹12,000. Confidence 0.99.", Timestamp: "00:00:12"},
		},
	}
}

func scenario00120() *Scenario {
	return &Scenario{
		ClaimID: "AC-2025-00120",
		FNOL: FNOLSummary{
			Location:     "Anna Salai, Chennai",
			IncidentTime: "15 Oct 2025, 11:20",
			FNOLTime:     "11:30 (FNOL filing)",
			Description:  "Hit-and-run incident. Vehicle struck while parked. No witness, no CCTV footage. Damage pattern unusual for claimed scenario.",
			Weather:      "Clear, daytime",
			Injuries:     "None reported",
		},
		Stages: standardStages(stageTexts{
			ingest:   "Parsed 3 files (FNOL form, claimant statement, 6 photos). Extracted 8 key facts.",
			vision:   "Detected: driver-side door crush, inconsistent paint transfer. Severity: 6/10. Estimated repair cost: ₹58,000.",
			analysis: "No witness or CCTV corroboration. Damage height inconsistent with claimed parked position.",
			liability: "Third party unidentified; hit-and-run claim. Recommended liability: No-fault, " +
				"pending fraud review.",
			fraud:  "Risk score: 0.71. Reasons: damage pattern mismatch, no corroboration, prior claim on same vehicle panel.",
			payout: "Recommended payout: ₹68,500 (repairs ₹58,000 + assessment/admin ₹10,500), hold pending SIU review. Confidence 0.42.",
		}),
		Liability: Determination{
			Assessment:  LiabilityNoFault,
			Description: "Hit-and-run claim. Third-party unidentified. Fraud indicators present - recommend SIU review.",
		},
		Payout: Payout{
			Amount:    68500,
			Breakdown: "₹58,000 (repairs) + ₹10,500 (assessment, admin)",
		},
		Confidence: 0.42,
		Transcript: []Message{
			{Stage: StageDocumentAnalysis, Text: "No independent corroboration for hit-and-run account.", Timestamp: "00:00:06"},
			{Stage: StageFraud, Text: "Damage pattern unusual for claimed scenario. Risk score 0.71. SIU review recommended.", Timestamp: "00:00:10"},
			{Stage: StagePayout, Text: "Recommended payout ₹68,500, hold pending SIU. Confidence 0.42.", Timestamp: "00:00:13"},
		},
	}
}

// stageTexts carries the per-stage summaries for scenarios whose detailed
// reasoning is a single paragraph.
type stageTexts struct {
	ingest, vision, analysis, liability, fraud, payout string
}

// standardStages builds the six stage records with the canonical relative
// timestamps, using each summary as its own reasoning.
func standardStages(t stageTexts) []StageRecord {
	return []StageRecord{
		{Kind: StageDocumentIngest, Summary: t.ingest, DetailedReasoning: t.ingest, Timestamp: "00:00:02"},
		{Kind: StageVision, Summary: t.vision, DetailedReasoning: t.vision, Timestamp: "00:00:05"},
		{Kind: StageDocumentAnalysis, Summary: t.analysis, DetailedReasoning: t.analysis, Timestamp: "00:00:08"},
		{Kind: StageLiability, Summary: t.liability, DetailedReasoning: t.liability, Timestamp: "00:00:11"},
		{Kind: StageFraud, Summary: t.fraud, DetailedReasoning: t.fraud, Timestamp: "00:00:14"},
		{Kind: StagePayout, Summary: t.payout, DetailedReasoning: t.payout, Timestamp: "00:00:16"},
	}
}
