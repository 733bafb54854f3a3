package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/inclureach/inclureach/internal/config"
	"github.com/inclureach/inclureach/internal/db"
)

const seedPassword = "Recruiter@123"

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with demo recruiters and job postings",
	Long: `Creates a set of demo recruiter accounts and pre-verified job
postings. Existing accounts with the same emails are reused, so the
command is safe to run more than once. Requires DATABASE_URL.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

type seedRecruiter struct {
	fullName string
	email    string
}

var seedRecruiters = []seedRecruiter{
	{fullName: "Rajesh Kumar", email: "rajesh.kumar@seedrecruiter.com"},
	{fullName: "Kusumkar Deepak", email: "deepak.kusumkar@seedrecruiter.com"},
	{fullName: "Joshi Abhishek", email: "joshi.abhishek@seedrecruiter.com"},
	{fullName: "Somesh Bharbade", email: "somesh.bharbade@seedrecruiter.com"},
	{fullName: "Rushikesh Karlekar", email: "rushikesh.karlekar@seedrecruiter.com"},
}

var seedJobs = []db.JobCreateInput{
	{
		Title:       "Frontend Web Developer",
		Company:     "TechAccess Solutions",
		Location:    "Bangalore, Karnataka",
		Remote:      true,
		Description: "We are seeking a talented Frontend Developer to join our inclusive team. You will work on building accessible web applications that serve people with diverse abilities. Experience with React, HTML5, and CSS3 is required. We provide screen readers, voice recognition software, and flexible work arrangements.",
		Requirements: []string{
			"2+ years of experience in frontend development",
			"Strong knowledge of React and JavaScript",
			"Understanding of WCAG 2.1 accessibility guidelines",
			"Experience with responsive design",
			"Good communication skills",
		},
		Skills:             []string{"React", "JavaScript", "HTML5", "CSS3", "Accessibility", "Git"},
		DisabilityTypes:    []string{"Physical", "Visual", "Hearing"},
		DisabilitySeverity: "Any",
		Salary:             db.Salary{Amount: 45000, Currency: "INR", Period: "month", IsPublic: true},
	},
	{
		Title:       "Graphic Designer",
		Company:     "Creative Minds Studio",
		Location:    "Mumbai, Maharashtra",
		Remote:      false,
		Description: "Join our creative team to design marketing materials, social media content, and branding assets. We are an inclusive workplace with wheelchair accessibility, adjustable workstations, and assistive technology. Proficiency in Adobe Creative Suite is essential.",
		Requirements: []string{
			"Bachelor's degree in Design or related field",
			"3+ years of graphic design experience",
			"Portfolio demonstrating creative work",
			"Proficiency in Adobe Photoshop, Illustrator, and InDesign",
			"Strong attention to detail",
		},
		Skills:             []string{"Adobe Photoshop", "Illustrator", "InDesign", "Typography", "Branding"},
		DisabilityTypes:    []string{"Physical", "Hearing", "Cognitive"},
		DisabilitySeverity: "Mild",
		Salary:             db.Salary{Amount: 38000, Currency: "INR", Period: "month", IsPublic: true},
	},
	{
		Title:       "Data Entry Specialist",
		Company:     "DataPro Services",
		Location:    "Pune, Maharashtra",
		Remote:      true,
		Description: "We need detail-oriented Data Entry Specialists to process and manage information in our database systems. This remote position offers flexible hours and provides all necessary software. Training will be provided on our systems.",
		Requirements: []string{
			"High school diploma or equivalent",
			"Typing speed of 40+ WPM",
			"Basic computer literacy",
			"Attention to detail and accuracy",
			"Ability to work independently",
		},
		Skills:             []string{"Data Entry", "MS Excel", "Typing", "Attention to Detail"},
		DisabilityTypes:    []string{"Physical", "Hearing", "Other"},
		DisabilitySeverity: "Any",
		Salary:             db.Salary{Amount: 22000, Currency: "INR", Period: "month", IsPublic: true},
	},
	{
		Title:       "Customer Support Representative",
		Company:     "HelpDesk Heroes",
		Location:    "Hyderabad, Telangana",
		Remote:      true,
		Description: "Provide excellent customer service through email, chat, and phone support. We offer comprehensive training, flexible schedules, and support for employees with disabilities including TTY services and screen reader compatible systems.",
		Requirements: []string{
			"Excellent written and verbal communication",
			"Problem-solving mindset",
			"Patience and empathy with customers",
			"Basic computer skills",
		},
		Skills:             []string{"Customer Service", "Communication", "CRM", "Problem Solving"},
		DisabilityTypes:    []string{"Physical", "Visual", "Cognitive", "Other"},
		DisabilitySeverity: "Any",
		Salary:             db.Salary{Amount: 25000, Currency: "INR", Period: "month", IsPublic: true},
	},
	{
		Title:       "Digital Marketing Specialist",
		Company:     "GrowthWorks Agency",
		Location:    "Delhi, NCR",
		Remote:      true,
		Description: "Plan and execute digital marketing campaigns across social media, email, and search engines. Analyze campaign performance and optimize strategies. We support team members with flexible schedules and accessible marketing tools.",
		Requirements: []string{
			"2+ years of digital marketing experience",
			"Experience with Google Ads and Meta Ads",
			"Strong analytical skills",
			"Content writing ability",
		},
		Skills:             []string{"SEO", "Google Ads", "Social Media", "Analytics", "Content Marketing"},
		DisabilityTypes:    []string{"Physical", "Hearing"},
		DisabilitySeverity: "Moderate",
		Salary:             db.Salary{Amount: 40000, Currency: "INR", Period: "month", IsPublic: true},
	},
	{
		Title:       "Technical Support Engineer",
		Company:     "CloudNine Systems",
		Location:    "Chennai, Tamil Nadu",
		Remote:      true,
		Description: "Provide technical support to customers via phone, email, and chat. Troubleshoot hardware and software issues and document solutions. We offer comprehensive training and accessible support tools.",
		Requirements: []string{
			"Diploma or degree in IT or related field",
			"Understanding of operating systems and networking basics",
			"Clear communication skills",
			"Willingness to work in shifts",
		},
		Skills:             []string{"Troubleshooting", "Windows", "Linux", "Networking", "Documentation"},
		DisabilityTypes:    []string{"Physical", "Visual"},
		DisabilitySeverity: "Mild",
		Salary:             db.Salary{Amount: 32000, Currency: "INR", Period: "month", IsPublic: true},
	},
	{
		Title:       "Virtual Administrative Assistant",
		Company:     "RemoteOps India",
		Location:    "Remote",
		Remote:      true,
		Description: "Provide administrative support including email management, scheduling, research, and data organization. This role offers complete flexibility and uses cloud-based tools accessible to everyone.",
		Requirements: []string{
			"Strong organizational skills",
			"Proficiency with Google Workspace or MS Office",
			"Reliable internet connection",
			"Prior administrative experience preferred",
		},
		Skills:             []string{"Scheduling", "Email Management", "MS Office", "Organization"},
		DisabilityTypes:    []string{"Physical", "Hearing", "Cognitive", "Other"},
		DisabilitySeverity: "Any",
		Salary:             db.Salary{Amount: 20000, Currency: "INR", Period: "month", IsPublic: true},
	},
	{
		Title:       "UX Designer",
		Company:     "InclusiveDesign Labs",
		Location:    "Bangalore, Karnataka",
		Remote:      false,
		Description: "Design user experiences with accessibility at the core. You will run usability studies with assistive technology users and translate findings into inclusive product designs. Our studio is fully wheelchair accessible.",
		Requirements: []string{
			"3+ years of UX design experience",
			"Strong portfolio demonstrating design thinking",
			"Familiarity with WCAG and inclusive design practices",
			"Experience with Figma",
		},
		Skills:             []string{"Figma", "User Research", "Prototyping", "Accessibility", "Wireframing"},
		DisabilityTypes:    []string{"Physical", "Hearing"},
		DisabilitySeverity: "Any",
		Salary:             db.Salary{Amount: 55000, Currency: "INR", Period: "month", IsPublic: true},
	},
}

func runSeed(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	ctx := context.Background()

	// Seeding only needs the database, not the full server config.
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	passwords, err := config.NewPasswordConfig()
	if err != nil {
		return fmt.Errorf("invalid password configuration: %w", err)
	}
	hash, err := passwords.HashPassword(seedPassword)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	recruiterIDs := make([]uuid.UUID, 0, len(seedRecruiters))
	for _, r := range seedRecruiters {
		existing, err := database.GetUserByEmail(ctx, r.email)
		if err != nil {
			return fmt.Errorf("failed to look up %s: %w", r.email, err)
		}
		if existing != nil {
			logger.Info().Str("email", r.email).Msg("recruiter already exists")
			recruiterIDs = append(recruiterIDs, existing.ID)
			continue
		}
		id, err := database.CreateUser(ctx, r.fullName, r.email, hash)
		if err != nil {
			return fmt.Errorf("failed to create recruiter %s: %w", r.email, err)
		}
		logger.Info().Str("email", r.email).Msg("created recruiter")
		recruiterIDs = append(recruiterIDs, id)
	}

	// Seed jobs skip verification: they are trusted demo content.
	now := time.Now()
	for i := range seedJobs {
		in := seedJobs[i]
		in.PostedBy = recruiterIDs[i%len(recruiterIDs)]
		in.Status = db.JobStatusActive
		in.Verification = db.Verification{
			RiskScore:    0,
			RedFlags:     []string{},
			LastVerified: now,
		}
		job, err := database.CreateJob(ctx, &in)
		if err != nil {
			return fmt.Errorf("failed to create job %q: %w", in.Title, err)
		}
		logger.Info().Str("title", job.Title).Str("company", job.Company).Msg("created job")
	}

	logger.Info().
		Int("recruiters", len(recruiterIDs)).
		Int("jobs", len(seedJobs)).
		Str("password", seedPassword).
		Msg("seeding complete, log in with any seed recruiter email")
	return nil
}
