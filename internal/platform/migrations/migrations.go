package migrations

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Run applies the schema of all bounded contexts and seeds the reference data.
// Flags are stored as 0/1 integers.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	if err := db.AutoMigrate(
		// identity
		&userRecord{},
		&accessTokenRecord{},
		&refreshTokenRecord{},
		&userInvitationRecord{},
		&userRecoveryRecord{},
		&userLogRecord{},
		// club
		&countryRecord{},
		&contactRecord{},
		&personRecord{},
		&memberRecord{},
		&importRecord{},
		&memberImportRecord{},
		// teams
		&teamRecord{},
		&teamMemberRecord{},
		// training
		&coachRecord{},
		&trainingDefinitionRecord{},
		&trainingRecord{},
		&trainingContentRecord{},
		&trainingCoachRecord{},
		&trainingTeamRecord{},
		// portal
		&applicationRecord{},
		&newsStoryRecord{},
		&newsContentRecord{},
		&pageRecord{},
		&pageContentRecord{},
		&authorRecord{},
	); err != nil {
		return err
	}
	return seedCountries(db)
}

func seedCountries(db *gorm.DB) error {
	now := time.Now().UTC()
	countries := []countryRecord{
		{ISO2: "BE", ISO3: "BEL", Name: "Belgium", CreatedAt: now},
		{ISO2: "NL", ISO3: "NLD", Name: "Netherlands", CreatedAt: now},
		{ISO2: "FR", ISO3: "FRA", Name: "France", CreatedAt: now},
		{ISO2: "DE", ISO3: "DEU", Name: "Germany", CreatedAt: now},
		{ISO2: "LU", ISO3: "LUX", Name: "Luxembourg", CreatedAt: now},
		{ISO2: "GB", ISO3: "GBR", Name: "United Kingdom", CreatedAt: now},
		{ISO2: "JP", ISO3: "JPN", Name: "Japan", CreatedAt: now},
	}
	return db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "iso_2"}}, DoNothing: true}).Create(&countries).Error
}

type userRecord struct {
	ID                    int64      `gorm:"primaryKey;column:id"`
	Email                 string     `gorm:"column:email;uniqueIndex"`
	FirstName             string     `gorm:"column:first_name"`
	LastName              string     `gorm:"column:last_name"`
	Remark                *string    `gorm:"column:remark;type:text"`
	UUID                  string     `gorm:"column:uuid;uniqueIndex;size:36"`
	PersonID              *int64     `gorm:"column:person_id"`
	LastLogin             *time.Time `gorm:"column:last_login"`
	LastUnsuccessfulLogin *time.Time `gorm:"column:last_unsuccessful_login"`
	Password              string     `gorm:"column:password"`
	Revoked               int        `gorm:"column:revoked;default:0"`
	Admin                 int        `gorm:"column:admin;default:0"`
	CreatedAt             time.Time  `gorm:"column:created_at"`
	UpdatedAt             *time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

type accessTokenRecord struct {
	ID         int64      `gorm:"primaryKey;column:id"`
	Identifier string     `gorm:"column:identifier;uniqueIndex;size:80"`
	Expiration time.Time  `gorm:"column:expiration;index"`
	UserID     int64      `gorm:"column:user_id;index"`
	Revoked    int        `gorm:"column:revoked;default:0"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  *time.Time `gorm:"column:updated_at"`
}

func (accessTokenRecord) TableName() string { return "oauth_access_tokens" }

type userLogRecord struct {
	ID             int64     `gorm:"primaryKey;column:id"`
	Success        int       `gorm:"column:success;default:0"`
	Email          string    `gorm:"column:email;size:255;index"`
	RefreshTokenID *int64    `gorm:"column:refresh_token_id"`
	ClientIP       string    `gorm:"column:client_ip;size:45"`
	UserAgent      string    `gorm:"column:user_agent"`
	Remark         *string   `gorm:"column:remark"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (userLogRecord) TableName() string { return "user_logs" }

type refreshTokenRecord struct {
	ID            int64      `gorm:"primaryKey;column:id"`
	Identifier    string     `gorm:"column:identifier;uniqueIndex;size:80"`
	AccessTokenID int64      `gorm:"column:access_token_id;index"`
	Expiration    time.Time  `gorm:"column:expiration;index"`
	Revoked       int        `gorm:"column:revoked;default:0"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     *time.Time `gorm:"column:updated_at"`
}

func (refreshTokenRecord) TableName() string { return "oauth_refresh_tokens" }

type userInvitationRecord struct {
	ID          int64      `gorm:"primaryKey;column:id"`
	Email       string     `gorm:"column:email;index"`
	FirstName   string     `gorm:"column:first_name"`
	LastName    string     `gorm:"column:last_name"`
	UUID        string     `gorm:"column:uuid;uniqueIndex;size:36"`
	ExpiredAt   time.Time  `gorm:"column:expired_at"`
	Remark      *string    `gorm:"column:remark;type:text"`
	UserID      int64      `gorm:"column:user_id"`
	ConfirmedAt *time.Time `gorm:"column:confirmed_at"`
	MailedAt    *time.Time `gorm:"column:mailed_at"`
	Revoked     int        `gorm:"column:revoked;default:0"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   *time.Time `gorm:"column:updated_at"`
}

func (userInvitationRecord) TableName() string { return "user_invitations" }

type userRecoveryRecord struct {
	ID          int64      `gorm:"primaryKey;column:id"`
	UserID      int64      `gorm:"column:user_id;index"`
	UUID        string     `gorm:"column:uuid;uniqueIndex;size:36"`
	ExpiredAt   time.Time  `gorm:"column:expired_at"`
	ConfirmedAt *time.Time `gorm:"column:confirmed_at"`
	MailedAt    *time.Time `gorm:"column:mailed_at"`
	Remark      *string    `gorm:"column:remark;type:text"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   *time.Time `gorm:"column:updated_at"`
}

func (userRecoveryRecord) TableName() string { return "user_recoveries" }

type countryRecord struct {
	ID        int64      `gorm:"primaryKey;column:id"`
	ISO2      string     `gorm:"column:iso_2;uniqueIndex;size:2"`
	ISO3      string     `gorm:"column:iso_3;size:3"`
	Name      string     `gorm:"column:name"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at"`
}

func (countryRecord) TableName() string { return "countries" }

type contactRecord struct {
	ID         int64      `gorm:"primaryKey;column:id"`
	Email      string     `gorm:"column:email"`
	Tel        string     `gorm:"column:tel"`
	Mobile     string     `gorm:"column:mobile"`
	Address    string     `gorm:"column:address"`
	PostalCode string     `gorm:"column:postal_code"`
	City       string     `gorm:"column:city"`
	County     string     `gorm:"column:county"`
	CountryID  int64      `gorm:"column:country_id"`
	Remark     *string    `gorm:"column:remark;type:text"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  *time.Time `gorm:"column:updated_at"`
}

func (contactRecord) TableName() string { return "contacts" }

type personRecord struct {
	ID            int64      `gorm:"primaryKey;column:id"`
	Lastname      string     `gorm:"column:lastname"`
	Firstname     string     `gorm:"column:firstname"`
	Gender        int        `gorm:"column:gender"`
	Birthdate     time.Time  `gorm:"column:birthdate"`
	Remark        *string    `gorm:"column:remark;type:text"`
	UserID        *int64     `gorm:"column:user_id"`
	ContactID     int64      `gorm:"column:contact_id"`
	NationalityID int64      `gorm:"column:nationality_id"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     *time.Time `gorm:"column:updated_at"`
}

func (personRecord) TableName() string { return "persons" }

type memberRecord struct {
	ID             int64      `gorm:"primaryKey;column:id"`
	UUID           string     `gorm:"column:uuid;uniqueIndex;size:36"`
	License        string     `gorm:"column:license;uniqueIndex;size:20"`
	LicenseEndDate time.Time  `gorm:"column:license_end_date;index"`
	PersonID       int64      `gorm:"column:person_id"`
	Remark         *string    `gorm:"column:remark;type:text"`
	Competition    int        `gorm:"column:competition;default:0"`
	Active         int        `gorm:"column:active;default:1"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      *time.Time `gorm:"column:updated_at"`
}

func (memberRecord) TableName() string { return "judo_members" }

type importRecord struct {
	ID        int64      `gorm:"primaryKey;column:id"`
	UUID      string     `gorm:"column:uuid;uniqueIndex;size:36"`
	Filename  string     `gorm:"column:filename"`
	Remark    string     `gorm:"column:remark;type:text"`
	Preview   int        `gorm:"column:preview"`
	UserID    int64      `gorm:"column:user_id"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at"`
}

func (importRecord) TableName() string { return "imports" }

type memberImportRecord struct {
	MemberID  int64     `gorm:"primaryKey;column:member_id;autoIncrement:false"`
	ImportID  int64     `gorm:"primaryKey;column:import_id;autoIncrement:false"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (memberImportRecord) TableName() string { return "judo_member_imports" }

type teamRecord struct {
	ID             int64      `gorm:"primaryKey;column:id"`
	Name           string     `gorm:"column:name;uniqueIndex"`
	SeasonID       *int64     `gorm:"column:season_id"`
	TeamCategoryID *int64     `gorm:"column:team_category_id"`
	Active         int        `gorm:"column:active;default:1"`
	Remark         *string    `gorm:"column:remark;type:text"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      *time.Time `gorm:"column:updated_at"`
}

func (teamRecord) TableName() string { return "teams" }

type teamMemberRecord struct {
	TeamID    int64      `gorm:"primaryKey;column:team_id;autoIncrement:false"`
	MemberID  int64      `gorm:"primaryKey;column:member_id;autoIncrement:false"`
	Active    int        `gorm:"column:active;default:1"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at"`
}

func (teamMemberRecord) TableName() string { return "team_members" }

type coachRecord struct {
	ID          int64      `gorm:"primaryKey;column:id"`
	MemberID    int64      `gorm:"column:member_id;index"`
	Description string     `gorm:"column:description;type:text"`
	Diploma     string     `gorm:"column:diploma"`
	Active      int        `gorm:"column:active;default:1"`
	Remark      *string    `gorm:"column:remark;type:text"`
	UserID      *int64     `gorm:"column:user_id"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   *time.Time `gorm:"column:updated_at"`
}

func (coachRecord) TableName() string { return "coaches" }

type trainingDefinitionRecord struct {
	ID          int64      `gorm:"primaryKey;column:id"`
	Name        string     `gorm:"column:name"`
	Description string     `gorm:"column:description;type:text"`
	SeasonID    *int64     `gorm:"column:season_id"`
	TeamID      *int64     `gorm:"column:team_id"`
	Weekday     int        `gorm:"column:weekday"`
	StartTime   string     `gorm:"column:start_time;size:5"`
	EndTime     string     `gorm:"column:end_time;size:5"`
	Timezone    string     `gorm:"column:timezone"`
	Active      int        `gorm:"column:active;default:1"`
	Location    *string    `gorm:"column:location"`
	Remark      *string    `gorm:"column:remark;type:text"`
	UserID      int64      `gorm:"column:user_id"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   *time.Time `gorm:"column:updated_at"`
}

func (trainingDefinitionRecord) TableName() string { return "training_definitions" }

type trainingRecord struct {
	ID           int64      `gorm:"primaryKey;column:id"`
	DefinitionID *int64     `gorm:"column:definition_id;index"`
	SeasonID     *int64     `gorm:"column:season_id"`
	StartDate    time.Time  `gorm:"column:start_date;index"`
	EndDate      time.Time  `gorm:"column:end_date"`
	Active       int        `gorm:"column:active;default:1"`
	Cancelled    int        `gorm:"column:cancelled;default:0"`
	Location     *string    `gorm:"column:location"`
	Remark       *string    `gorm:"column:remark;type:text"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    *time.Time `gorm:"column:updated_at"`
}

func (trainingRecord) TableName() string { return "trainings" }

// TextColumns are shared by all tables holding a translated text.
type TextColumns struct {
	Locale    string     `gorm:"primaryKey;column:locale;size:5"`
	Format    string     `gorm:"column:format;size:10"`
	Title     string     `gorm:"column:title"`
	Content   string     `gorm:"column:content;type:text"`
	Summary   string     `gorm:"column:summary;type:text"`
	UserID    int64      `gorm:"column:user_id"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at"`
}

type trainingContentRecord struct {
	TrainingID int64 `gorm:"primaryKey;column:training_id;autoIncrement:false"`
	TextColumns
}

func (trainingContentRecord) TableName() string { return "training_contents" }

type trainingCoachRecord struct {
	TrainingID int64      `gorm:"primaryKey;column:training_id;autoIncrement:false"`
	CoachID    int64      `gorm:"primaryKey;column:coach_id;autoIncrement:false"`
	CoachType  int        `gorm:"column:coach_type;default:0"`
	Present    int        `gorm:"column:present;default:0"`
	Payed      int        `gorm:"column:payed;default:0"`
	Remark     *string    `gorm:"column:remark;type:text"`
	UserID     int64      `gorm:"column:user_id"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  *time.Time `gorm:"column:updated_at"`
}

func (trainingCoachRecord) TableName() string { return "training_coaches" }

type trainingTeamRecord struct {
	TrainingID int64      `gorm:"primaryKey;column:training_id;autoIncrement:false"`
	TeamID     int64      `gorm:"primaryKey;column:team_id;autoIncrement:false"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  *time.Time `gorm:"column:updated_at"`
}

func (trainingTeamRecord) TableName() string { return "training_teams" }

type applicationRecord struct {
	ID               int64      `gorm:"primaryKey;column:id"`
	Title            string     `gorm:"column:title"`
	Name             string     `gorm:"column:name;uniqueIndex"`
	ShortDescription string     `gorm:"column:short_description"`
	Description      *string    `gorm:"column:description;type:text"`
	Remark           *string    `gorm:"column:remark;type:text"`
	News             int        `gorm:"column:news;default:1"`
	Pages            int        `gorm:"column:pages;default:1"`
	Events           int        `gorm:"column:events;default:1"`
	Weight           int        `gorm:"column:weight;default:0"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        *time.Time `gorm:"column:updated_at"`
}

func (applicationRecord) TableName() string { return "applications" }

type newsStoryRecord struct {
	ID               int64      `gorm:"primaryKey;column:id"`
	Enabled          int        `gorm:"column:enabled;default:0"`
	Promotion        int        `gorm:"column:promotion;default:0"`
	PromotionEndDate *time.Time `gorm:"column:promotion_end_date"`
	PublishDate      time.Time  `gorm:"column:publish_date;index"`
	EndDate          *time.Time `gorm:"column:end_date"`
	Remark           *string    `gorm:"column:remark;type:text"`
	ApplicationID    int64      `gorm:"column:application_id;index"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        *time.Time `gorm:"column:updated_at"`
}

func (newsStoryRecord) TableName() string { return "news_stories" }

type newsContentRecord struct {
	NewsID int64 `gorm:"primaryKey;column:news_id;autoIncrement:false"`
	TextColumns
}

func (newsContentRecord) TableName() string { return "news_contents" }

type pageRecord struct {
	ID            int64      `gorm:"primaryKey;column:id"`
	Enabled       int        `gorm:"column:enabled;default:0"`
	Remark        *string    `gorm:"column:remark;type:text"`
	ApplicationID int64      `gorm:"column:application_id;index"`
	Priority      int        `gorm:"column:priority;default:0"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     *time.Time `gorm:"column:updated_at"`
}

func (pageRecord) TableName() string { return "pages" }

type pageContentRecord struct {
	PageID int64 `gorm:"primaryKey;column:page_id;autoIncrement:false"`
	TextColumns
}

func (pageContentRecord) TableName() string { return "page_contents" }

type authorRecord struct {
	UserID    int64      `gorm:"primaryKey;column:user_id;autoIncrement:false"`
	Name      string     `gorm:"column:name"`
	Remark    *string    `gorm:"column:remark;type:text"`
	Active    int        `gorm:"column:active;default:1"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at"`
}

func (authorRecord) TableName() string { return "authors" }
