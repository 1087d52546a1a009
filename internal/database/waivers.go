package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const createEsportsWaiver = `
INSERT INTO esports_waivers (
	id, student_name, student_age, parent_name, parent_email, parent_phone,
	emergency_contact_name, emergency_contact_phone, emergency_contact_relationship,
	medical_conditions, medications, allergies,
	e_rated_games_authorized, t_rated_games_authorized, m_rated_games_authorized,
	parent_signature, signature_date
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
RETURNING id, student_name, student_age, parent_name, parent_email, parent_phone,
          emergency_contact_name, emergency_contact_phone, emergency_contact_relationship,
          medical_conditions, medications, allergies,
          e_rated_games_authorized, t_rated_games_authorized, m_rated_games_authorized,
          parent_signature, signature_date, submitted_at
`

type CreateEsportsWaiverParams struct {
	ID                           uuid.UUID
	StudentName                  string
	StudentAge                   int32
	ParentName                   string
	ParentEmail                  string
	ParentPhone                  string
	EmergencyContactName         string
	EmergencyContactPhone        string
	EmergencyContactRelationship string
	MedicalConditions            sql.NullString
	Medications                  sql.NullString
	Allergies                    sql.NullString
	ERatedGamesAuthorized        bool
	TRatedGamesAuthorized        bool
	MRatedGamesAuthorized        bool
	ParentSignature              string
	SignatureDate                time.Time
}

func (q *Queries) CreateEsportsWaiver(ctx context.Context, arg CreateEsportsWaiverParams) (EsportsWaiver, error) {
	row := q.db.QueryRowContext(ctx, createEsportsWaiver,
		arg.ID, arg.StudentName, arg.StudentAge, arg.ParentName, arg.ParentEmail,
		arg.ParentPhone, arg.EmergencyContactName, arg.EmergencyContactPhone,
		arg.EmergencyContactRelationship, arg.MedicalConditions, arg.Medications,
		arg.Allergies, arg.ERatedGamesAuthorized, arg.TRatedGamesAuthorized,
		arg.MRatedGamesAuthorized, arg.ParentSignature, arg.SignatureDate,
	)

	var waiver EsportsWaiver
	err := row.Scan(
		&waiver.ID, &waiver.StudentName, &waiver.StudentAge, &waiver.ParentName,
		&waiver.ParentEmail, &waiver.ParentPhone, &waiver.EmergencyContactName,
		&waiver.EmergencyContactPhone, &waiver.EmergencyContactRelationship,
		&waiver.MedicalConditions, &waiver.Medications, &waiver.Allergies,
		&waiver.ERatedGamesAuthorized, &waiver.TRatedGamesAuthorized,
		&waiver.MRatedGamesAuthorized, &waiver.ParentSignature,
		&waiver.SignatureDate, &waiver.SubmittedAt,
	)

	return waiver, err
}

const getEsportsWaiversByParentEmail = `
SELECT id, student_name, student_age, parent_name, parent_email, parent_phone,
       emergency_contact_name, emergency_contact_phone, emergency_contact_relationship,
       medical_conditions, medications, allergies,
       e_rated_games_authorized, t_rated_games_authorized, m_rated_games_authorized,
       parent_signature, signature_date, submitted_at
FROM esports_waivers
WHERE parent_email = $1
ORDER BY submitted_at DESC
`

func (q *Queries) GetEsportsWaiversByParentEmail(ctx context.Context, parentEmail string) ([]EsportsWaiver, error) {
	rows, err := q.db.QueryContext(ctx, getEsportsWaiversByParentEmail, parentEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var waivers []EsportsWaiver
	for rows.Next() {
		var waiver EsportsWaiver
		if err := rows.Scan(
			&waiver.ID, &waiver.StudentName, &waiver.StudentAge, &waiver.ParentName,
			&waiver.ParentEmail, &waiver.ParentPhone, &waiver.EmergencyContactName,
			&waiver.EmergencyContactPhone, &waiver.EmergencyContactRelationship,
			&waiver.MedicalConditions, &waiver.Medications, &waiver.Allergies,
			&waiver.ERatedGamesAuthorized, &waiver.TRatedGamesAuthorized,
			&waiver.MRatedGamesAuthorized, &waiver.ParentSignature,
			&waiver.SignatureDate, &waiver.SubmittedAt,
		); err != nil {
			return nil, err
		}

		waivers = append(waivers, waiver)
	}

	return waivers, rows.Err()
}

const createMediaRelease = `
INSERT INTO media_releases (
	id, student_name, parent_name, parent_email, parent_phone,
	permission_granted, parent_signature, signature_date
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, student_name, parent_name, parent_email, parent_phone,
          permission_granted, parent_signature, signature_date, submitted_at
`

type CreateMediaReleaseParams struct {
	ID                uuid.UUID
	StudentName       string
	ParentName        string
	ParentEmail       string
	ParentPhone       string
	PermissionGranted bool
	ParentSignature   string
	SignatureDate     time.Time
}

func (q *Queries) CreateMediaRelease(ctx context.Context, arg CreateMediaReleaseParams) (MediaRelease, error) {
	row := q.db.QueryRowContext(ctx, createMediaRelease,
		arg.ID, arg.StudentName, arg.ParentName, arg.ParentEmail, arg.ParentPhone,
		arg.PermissionGranted, arg.ParentSignature, arg.SignatureDate,
	)

	var release MediaRelease
	err := row.Scan(
		&release.ID, &release.StudentName, &release.ParentName, &release.ParentEmail,
		&release.ParentPhone, &release.PermissionGranted, &release.ParentSignature,
		&release.SignatureDate, &release.SubmittedAt,
	)

	return release, err
}

const getMediaReleasesByParentEmail = `
SELECT id, student_name, parent_name, parent_email, parent_phone,
       permission_granted, parent_signature, signature_date, submitted_at
FROM media_releases
WHERE parent_email = $1
ORDER BY submitted_at DESC
`

func (q *Queries) GetMediaReleasesByParentEmail(ctx context.Context, parentEmail string) ([]MediaRelease, error) {
	rows, err := q.db.QueryContext(ctx, getMediaReleasesByParentEmail, parentEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var releases []MediaRelease
	for rows.Next() {
		var release MediaRelease
		if err := rows.Scan(
			&release.ID, &release.StudentName, &release.ParentName, &release.ParentEmail,
			&release.ParentPhone, &release.PermissionGranted, &release.ParentSignature,
			&release.SignatureDate, &release.SubmittedAt,
		); err != nil {
			return nil, err
		}

		releases = append(releases, release)
	}

	return releases, rows.Err()
}

const createGeneralWaiver = `
INSERT INTO general_waivers (
	id, student_name, student_address, student_city, student_state, student_zip,
	parent_name, parent_email, parent_phone, parent_address, parent_city,
	parent_state, parent_zip, emergency_contact_name, emergency_contact_phone,
	emergency_contact_relationship, medical_conditions, medications, allergies,
	dietary_restrictions, physician_name, physician_phone, insurance_company,
	insurance_policy_number, assumption_of_risk_acknowledged,
	liability_release_acknowledged, indemnification_acknowledged,
	code_of_conduct_acknowledged, electronic_signature_consent,
	parent_signature, signature_date
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
        $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31)
RETURNING id, student_name, parent_name, parent_email, parent_phone,
          parent_signature, signature_date, submitted_at
`

type CreateGeneralWaiverParams struct {
	ID                           uuid.UUID
	StudentName                  string
	StudentAddress               sql.NullString
	StudentCity                  sql.NullString
	StudentState                 sql.NullString
	StudentZip                   sql.NullString
	ParentName                   string
	ParentEmail                  string
	ParentPhone                  string
	ParentAddress                sql.NullString
	ParentCity                   sql.NullString
	ParentState                  sql.NullString
	ParentZip                    sql.NullString
	EmergencyContactName         string
	EmergencyContactPhone        string
	EmergencyContactRelationship string
	MedicalConditions            sql.NullString
	Medications                  sql.NullString
	Allergies                    sql.NullString
	DietaryRestrictions          sql.NullString
	PhysicianName                sql.NullString
	PhysicianPhone               sql.NullString
	InsuranceCompany             sql.NullString
	InsurancePolicyNumber        sql.NullString
	AssumptionOfRiskAcknowledged bool
	LiabilityReleaseAcknowledged bool
	IndemnificationAcknowledged  bool
	CodeOfConductAcknowledged    bool
	ElectronicSignatureConsent   bool
	ParentSignature              string
	SignatureDate                time.Time
}

type CreateGeneralWaiverRow struct {
	ID              uuid.UUID
	StudentName     string
	ParentName      string
	ParentEmail     string
	ParentPhone     string
	ParentSignature string
	SignatureDate   time.Time
	SubmittedAt     time.Time
}

func (q *Queries) CreateGeneralWaiver(ctx context.Context, arg CreateGeneralWaiverParams) (CreateGeneralWaiverRow, error) {
	row := q.db.QueryRowContext(ctx, createGeneralWaiver,
		arg.ID, arg.StudentName, arg.StudentAddress, arg.StudentCity, arg.StudentState,
		arg.StudentZip, arg.ParentName, arg.ParentEmail, arg.ParentPhone,
		arg.ParentAddress, arg.ParentCity, arg.ParentState, arg.ParentZip,
		arg.EmergencyContactName, arg.EmergencyContactPhone, arg.EmergencyContactRelationship,
		arg.MedicalConditions, arg.Medications, arg.Allergies, arg.DietaryRestrictions,
		arg.PhysicianName, arg.PhysicianPhone, arg.InsuranceCompany, arg.InsurancePolicyNumber,
		arg.AssumptionOfRiskAcknowledged, arg.LiabilityReleaseAcknowledged,
		arg.IndemnificationAcknowledged, arg.CodeOfConductAcknowledged,
		arg.ElectronicSignatureConsent, arg.ParentSignature, arg.SignatureDate,
	)

	var waiver CreateGeneralWaiverRow
	err := row.Scan(
		&waiver.ID, &waiver.StudentName, &waiver.ParentName, &waiver.ParentEmail,
		&waiver.ParentPhone, &waiver.ParentSignature, &waiver.SignatureDate,
		&waiver.SubmittedAt,
	)

	return waiver, err
}

const getGeneralWaiversByParentEmail = `
SELECT id, student_name, parent_name, parent_email, parent_phone,
       emergency_contact_name, emergency_contact_phone, emergency_contact_relationship,
       medical_conditions, medications, allergies,
       parent_signature, signature_date, submitted_at
FROM general_waivers
WHERE parent_email = $1
ORDER BY submitted_at DESC
`

type GetGeneralWaiversByParentEmailRow struct {
	ID                           uuid.UUID
	StudentName                  string
	ParentName                   string
	ParentEmail                  string
	ParentPhone                  string
	EmergencyContactName         string
	EmergencyContactPhone        string
	EmergencyContactRelationship string
	MedicalConditions            sql.NullString
	Medications                  sql.NullString
	Allergies                    sql.NullString
	ParentSignature              string
	SignatureDate                time.Time
	SubmittedAt                  time.Time
}

func (q *Queries) GetGeneralWaiversByParentEmail(ctx context.Context, parentEmail string) ([]GetGeneralWaiversByParentEmailRow, error) {
	rows, err := q.db.QueryContext(ctx, getGeneralWaiversByParentEmail, parentEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var waivers []GetGeneralWaiversByParentEmailRow
	for rows.Next() {
		var waiver GetGeneralWaiversByParentEmailRow
		if err := rows.Scan(
			&waiver.ID, &waiver.StudentName, &waiver.ParentName, &waiver.ParentEmail,
			&waiver.ParentPhone, &waiver.EmergencyContactName, &waiver.EmergencyContactPhone,
			&waiver.EmergencyContactRelationship, &waiver.MedicalConditions,
			&waiver.Medications, &waiver.Allergies, &waiver.ParentSignature,
			&waiver.SignatureDate, &waiver.SubmittedAt,
		); err != nil {
			return nil, err
		}

		waivers = append(waivers, waiver)
	}

	return waivers, rows.Err()
}
