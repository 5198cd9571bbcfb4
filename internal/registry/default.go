package registry

import "github.com/gyeh/revshare/internal/model"

// Peer groups of the orthopaedic practice.
const (
	ShoulderElbow = "SHOULDER AND ELBOW"
	FootAnkle     = "FOOT AND ANKLE"
	Hand          = "HAND"
	Knee          = "KNEE"
)

var defaultProfiles = []model.PhysicianProfile{
	{Name: "FALLONE, JAN", PeerGroup: ShoulderElbow, Tier: model.TierSenior},
	{Name: "ORTEGA RODRIGUEZ, JUAN PABLO", PeerGroup: FootAnkle, Tier: model.TierSenior},
	{Name: "ESTEBAN FELIU, IGNACIO", PeerGroup: Hand, Tier: model.TierSenior},
	{Name: "PARDO I POL, ALBERT", PeerGroup: Hand, Tier: model.TierSpecialist},
	{Name: "ALCANTARA MORENO, EDGAR ALFREDO", PeerGroup: ShoulderElbow, Tier: model.TierSpecialist},
	{Name: "RIUS MORENO, XAVIER", PeerGroup: ShoulderElbow, Tier: model.TierSenior},
	{Name: "AGUILAR GARCIA, MARC", PeerGroup: Knee, Tier: model.TierSenior},
	{Name: "MAIO MÉNDEZ, TOMAS EDUARDO", PeerGroup: Knee, Tier: model.TierSpecialist},
	{Name: "MONSONET VILLA, PABLO", PeerGroup: Knee, Tier: model.TierSenior},
	{Name: "PUIGDELLIVOL GRIFELL, JORDI", PeerGroup: Knee, Tier: model.TierSenior},
	{Name: "CASACCIA, MARCELO AGUSTIN", PeerGroup: Knee, Tier: model.TierSenior},
}

// Default returns the built-in registry of the practice.
func Default() *Registry {
	r, err := New(defaultProfiles)
	if err != nil {
		panic(err)
	}
	return r
}
